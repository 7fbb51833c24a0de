package handlers

import (
	"net/http"
	"time"

	"insight-dashboard/app/server/constants"
	"insight-dashboard/app/server/models"
	"insight-dashboard/app/server/store"
	"insight-dashboard/app/server/utils"

	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthLogin 是不经过 OAuth 的手动登录，只服务固定的管理员身份。
// 未配置密码 hash 时整个入口关闭
func (a *App) AuthLogin(c echo.Context) error {
	if a.cfg.Security.AdminPasswordHash == "" {
		return a.er(c, http.StatusNotFound)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if req.Username != constants.ManualAdminUsername {
		return a.er(c, http.StatusUnauthorized)
	}

	// 校验密码
	if match, _, err := argon2id.CheckHash(req.Password, a.cfg.Security.AdminPasswordHash); err != nil {
		a.l.Error("failed to check password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	} else if !match {
		return a.er(c, http.StatusUnauthorized)
	}

	// 确认或创建管理员用户
	user, err := a.store.UpsertUser(rctx, store.UserUpsert{
		OpenID:       constants.ManualAdminOpenID,
		Name:         utils.P(constants.ManualAdminName),
		Email:        utils.P(constants.ManualAdminEmail),
		LoginMethod:  utils.P("manual"),
		Role:         utils.P(models.RoleAdmin),
		LastSignedIn: utils.P(time.Now()),
	})
	if err != nil {
		a.l.Error("failed to upsert manual admin user", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 签出会话
	signed, err := a.jwt.SignSession(user.OpenID, user.Name, constants.SessionDuration)
	if err != nil {
		a.l.Error("failed to sign session", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.setSessionCookie(c, signed, constants.SessionDuration)
	return c.JSON(http.StatusOK, user)
}
