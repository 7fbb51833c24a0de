package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorMessage struct {
	Message string `json:"message"`
}

func (a *App) er(c echo.Context, statusCode int) error {
	return c.JSON(statusCode, &errorMessage{
		Message: http.StatusText(statusCode),
	})
}

func (a *App) erMsg(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, &errorMessage{
		Message: message,
	})
}
