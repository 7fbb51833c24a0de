package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AuthLogout 只清除客户端 cookie 。会话是无状态的，已签发的令牌在过期前
// 仍然可以通过 Authorization 头使用
func (a *App) AuthLogout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     a.cfg.Security.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.cfg.System.IsProd,
	})

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
