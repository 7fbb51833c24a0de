package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"insight-dashboard/app/server/constants"
	"insight-dashboard/app/server/models"
	"insight-dashboard/app/server/store"
	"insight-dashboard/app/server/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// 返回给客户端的认证失败消息
var (
	errInvalidSession = errors.New("Invalid session")
	errUserSyncFailed = errors.New("Failed to sync user info")
)

// 认证失败统一出口： 403 带消息，其余状态只给通用文案，内部原因不外泄
func (a *App) erAuth(c echo.Context, err error, statusCode int) error {
	if statusCode == http.StatusForbidden {
		return a.erMsg(c, statusCode, err.Error())
	}
	return a.er(c, statusCode)
}

// extractToken 按优先顺序发现令牌：先找会话 cookie ，找不到再看 Authorization 头。
// 两者都存在时以 cookie 为准
func (a *App) extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(a.cfg.Security.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	splits := strings.Split(authHeader, " ")
	if len(splits) != 2 || strings.ToLower(splits[0]) != "bearer" {
		return ""
	}

	return splits[1]
}

// authUser 认证当前请求并解析出用户。会话无效一律返回 403 ，不区分失败原因
func (a *App) authUser(c echo.Context) (*models.User, error, int) {
	// 验证令牌
	session, err := a.jwt.ParseSession(a.extractToken(c))
	if err != nil {
		a.l.Debug("session verification failed", zap.Error(err))
		return nil, errInvalidSession, http.StatusForbidden
	}

	rctx := c.Request().Context()
	now := time.Now()
	cacheKey := fmt.Sprintf(constants.CacheKeyUserByOpenID, session.OpenID)

	// 缓存里有用户行时免掉存在性查询，直接走刷新路径
	var cached models.User
	if !a.cacheGet(rctx, cacheKey, &cached) {
		// 解析用户，不存在时按会话声明补建
		if _, err := a.store.GetUserByOpenID(rctx, session.OpenID); err != nil {
			if !errors.Is(err, store.ErrUserNotFound) {
				a.l.Error("failed to find user", zap.String("openId", session.OpenID), zap.Error(err))
				return nil, err, http.StatusInternalServerError
			}

			name := session.Name
			if name == "" {
				name = "User"
			}

			user, err := a.store.UpsertUser(rctx, store.UserUpsert{
				OpenID:       session.OpenID,
				Name:         utils.P(name),
				LoginMethod:  utils.P("oauth"),
				LastSignedIn: utils.P(now),
			})
			if err != nil {
				a.l.Error("failed to sync user info", zap.String("openId", session.OpenID), zap.Error(err))
				return nil, errUserSyncFailed, http.StatusForbidden
			}

			a.cacheSet(rctx, cacheKey, user, constants.CacheExpireUser)
			return user, nil, http.StatusOK
		}
	}

	// 每次成功认证都刷新最后登录时间
	user, err := a.store.UpsertUser(rctx, store.UserUpsert{
		OpenID:       session.OpenID,
		LastSignedIn: utils.P(now),
	})
	if err != nil {
		a.l.Error("failed to touch last signed in", zap.String("openId", session.OpenID), zap.Error(err))
		return nil, err, http.StatusInternalServerError
	}

	a.cacheSet(rctx, cacheKey, user, constants.CacheExpireUser)
	return user, nil, http.StatusOK
}

func (a *App) setSessionCookie(c echo.Context, value string, maxAge time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     a.cfg.Security.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.cfg.System.IsProd,
	})
}
