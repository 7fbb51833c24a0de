package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) AuthMe(c echo.Context) error {
	user, err, statusCode := a.authUser(c)
	if err != nil {
		return a.erAuth(c, err, statusCode)
	}

	return c.JSON(http.StatusOK, user)
}
