package handlers

import (
	"errors"
	"net/http"
	"time"

	"insight-dashboard/app/server/constants"
	"insight-dashboard/app/server/oauth"
	"insight-dashboard/app/server/store"
	"insight-dashboard/app/server/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// OAuthCallback 处理浏览器跳转回来的授权码：换取令牌、拉取用户信息、
// 落库并签出会话，最后带着 cookie 跳回首页
func (a *App) OAuthCallback(c echo.Context) error {
	if a.oauth == nil {
		return a.erMsg(c, http.StatusServiceUnavailable, "oauth is not configured")
	}

	rctx := c.Request().Context()

	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" {
		return a.erMsg(c, http.StatusBadRequest, "code is required")
	}

	// 用授权码换令牌
	token, err := a.oauth.ExchangeCode(rctx, code, state)
	if err != nil {
		a.l.Error("failed to exchange code for token", zap.Error(err))
		var upstreamErr *oauth.UpstreamError
		if errors.As(err, &upstreamErr) {
			return a.erMsg(c, http.StatusBadGateway, "identity provider rejected the exchange")
		}
		return a.er(c, http.StatusInternalServerError)
	}

	// 拉取用户信息
	info, err := a.oauth.UserInfo(rctx, token.AccessToken)
	if err != nil {
		a.l.Error("failed to fetch user info", zap.Error(err))
		var upstreamErr *oauth.UpstreamError
		if errors.As(err, &upstreamErr) {
			return a.erMsg(c, http.StatusBadGateway, "identity provider rejected the exchange")
		}
		return a.er(c, http.StatusInternalServerError)
	}

	// 落库：首次创建，或刷新资料与最后登录时间
	user, err := a.store.UpsertUser(rctx, store.UserUpsert{
		OpenID:       info.OpenID,
		Name:         utils.P(info.Name),
		Email:        utils.P(info.Email),
		LoginMethod:  utils.P(info.LoginMethod),
		LastSignedIn: utils.P(time.Now()),
	})
	if err != nil {
		a.l.Error("failed to upsert user", zap.String("openId", info.OpenID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 签出会话
	signed, err := a.jwt.SignSession(user.OpenID, user.Name, constants.SessionDuration)
	if err != nil {
		a.l.Error("failed to sign session", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.setSessionCookie(c, signed, constants.SessionDuration)
	return c.Redirect(http.StatusFound, "/")
}
