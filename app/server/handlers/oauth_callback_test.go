package handlers

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"insight-dashboard/app/server/config"
	"insight-dashboard/app/server/constants"
	"insight-dashboard/app/server/oauth"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 门户流程打通整条回调链路：换码、拉取用户信息、建用户、签会话、种 cookie
func TestOAuthCallback(t *testing.T) {
	t.Parallel()

	portal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case constants.PortalExchangeTokenPath:
			_, _ = w.Write([]byte(`{"accessToken":"portal-token","tokenType":"Bearer","expiresIn":3600}`))
		case constants.PortalGetUserInfoPath:
			_, _ = w.Write([]byte(`{"openId":"portal-open-1","name":"Portal User","email":"p@example.com","platforms":["google"]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer portal.Close()

	cfg := &config.Config{}
	cfg.OAuth.AppID = "client-1"
	cfg.OAuth.PortalURL = portal.URL
	oc, err := oauth.New(cfg, zap.NewNop())
	require.NoError(t, err)

	a, j, st := newTestApp(t, oc)

	state := base64.RawURLEncoding.EncodeToString([]byte("https://app.example/callback"))
	c, rec := newTestContext(t, http.MethodGet, "/api/oauth/callback?code=the-code&state="+state)

	require.NoError(t, a.OAuthCallback(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	// 用户已经落库
	user, err := st.GetUserByOpenID(c.Request().Context(), "portal-open-1")
	require.NoError(t, err)
	require.Equal(t, "Portal User", user.Name)
	require.Equal(t, "google", user.LoginMethod)

	// cookie 里是一个可以验证回来的会话令牌
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, constants.DefaultSessionCookieName, cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	session, err := j.ParseSession(cookies[0].Value)
	require.NoError(t, err)
	require.Equal(t, "portal-open-1", session.OpenID)
}

func TestOAuthCallbackMissingCode(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.OAuth.AppID = "client-1"
	cfg.OAuth.ClientSecret = "secret"
	oc, err := oauth.New(cfg, zap.NewNop())
	require.NoError(t, err)

	a, _, _ := newTestApp(t, oc)
	c, rec := newTestContext(t, http.MethodGet, "/api/oauth/callback")

	require.NoError(t, a.OAuthCallback(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// 没有 OAuth 配置时只关闭回调入口，不影响其他接口
func TestOAuthCallbackNotConfigured(t *testing.T) {
	t.Parallel()

	a, _, _ := newTestApp(t, nil)
	c, rec := newTestContext(t, http.MethodGet, "/api/oauth/callback?code=the-code")

	require.NoError(t, a.OAuthCallback(c))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "oauth is not configured")
}

func TestOAuthCallbackUpstreamReject(t *testing.T) {
	t.Parallel()

	portal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusUnauthorized)
	}))
	defer portal.Close()

	cfg := &config.Config{}
	cfg.OAuth.AppID = "client-1"
	cfg.OAuth.PortalURL = portal.URL
	oc, err := oauth.New(cfg, zap.NewNop())
	require.NoError(t, err)

	a, _, _ := newTestApp(t, oc)

	c, rec := newTestContext(t, http.MethodGet, "/api/oauth/callback?code=bad-code")

	require.NoError(t, a.OAuthCallback(c))
	require.Equal(t, http.StatusBadGateway, rec.Code)
}
