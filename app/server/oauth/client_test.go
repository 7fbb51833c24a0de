package oauth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"insight-dashboard/app/server/config"
	"insight-dashboard/app/server/constants"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func directConfig() *config.Config {
	cfg := &config.Config{}
	cfg.OAuth.AppID = "client-1"
	cfg.OAuth.ClientSecret = "secret-1"
	return cfg
}

func portalConfig(portalURL string) *config.Config {
	cfg := &config.Config{}
	cfg.OAuth.AppID = "client-1"
	cfg.OAuth.PortalURL = portalURL
	return cfg
}

func TestNewFlowSelection(t *testing.T) {
	t.Parallel()

	c, err := New(directConfig(), zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, FlowDirect, c.Flow())

	c, err = New(portalConfig("https://portal.example"), zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, FlowPortal, c.Flow())

	_, err = New(&config.Config{}, zap.NewNop())
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestDecodeState(t *testing.T) {
	t.Parallel()

	redirectURI := "https://app.example/callback"

	// URL 安全编码与标准编码都要能还原
	require.Equal(t, redirectURI, DecodeState(base64.RawURLEncoding.EncodeToString([]byte(redirectURI))))
	require.Equal(t, redirectURI, DecodeState(base64.StdEncoding.EncodeToString([]byte(redirectURI))))

	require.Equal(t, "", DecodeState(""))
	require.Equal(t, "", DecodeState("%%%"))
}

func TestExchangeCodeDirect(t *testing.T) {
	t.Parallel()

	redirectURI := "https://app.example/callback"
	state := base64.RawURLEncoding.EncodeToString([]byte(redirectURI))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "the-code", r.PostForm.Get("code"))
		require.Equal(t, "client-1", r.PostForm.Get("client_id"))
		require.Equal(t, "secret-1", r.PostForm.Get("client_secret"))
		require.Equal(t, redirectURI, r.PostForm.Get("redirect_uri"))
		require.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"abc","token_type":"Bearer","expires_in":3600,"id_token":"idt","scope":"openid"}`))
	}))
	defer srv.Close()

	c, err := New(directConfig(), zap.NewNop())
	require.NoError(t, err)
	c.tokenEndpoint = srv.URL

	token, err := c.ExchangeCode(context.Background(), "the-code", state)
	require.NoError(t, err)
	require.Equal(t, "abc", token.AccessToken)
	require.Equal(t, "Bearer", token.TokenType)
	require.Equal(t, int64(3600), token.ExpiresIn)
	require.Equal(t, "idt", token.IDToken)
	require.Equal(t, "openid", token.Scope)
}

func TestExchangeCodeDirectUpstreamReject(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c, err := New(directConfig(), zap.NewNop())
	require.NoError(t, err)
	c.tokenEndpoint = srv.URL

	_, err = c.ExchangeCode(context.Background(), "bad-code", "")
	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	require.Equal(t, http.StatusBadRequest, upstreamErr.Status)
}

func TestExchangeCodePortal(t *testing.T) {
	t.Parallel()

	redirectURI := "https://app.example/callback"
	state := base64.RawURLEncoding.EncodeToString([]byte(redirectURI))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, constants.PortalExchangeTokenPath, r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "client-1", payload["clientId"])
		require.Equal(t, "authorization_code", payload["grantType"])
		require.Equal(t, "the-code", payload["code"])
		require.Equal(t, redirectURI, payload["redirectUri"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accessToken":"portal-token","tokenType":"Bearer","expiresIn":7200}`))
	}))
	defer srv.Close()

	c, err := New(portalConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	token, err := c.ExchangeCode(context.Background(), "the-code", state)
	require.NoError(t, err)
	require.Equal(t, "portal-token", token.AccessToken)
	require.Equal(t, int64(7200), token.ExpiresIn)
}

func TestUserInfoDirect(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer abc", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sub":"sub-1","name":"","email":"someone@example.com"}`))
	}))
	defer srv.Close()

	c, err := New(directConfig(), zap.NewNop())
	require.NoError(t, err)
	c.userInfoEndpoint = srv.URL

	info, err := c.UserInfo(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, "sub-1", info.OpenID)
	// 没有名字时使用邮箱的本地部分
	require.Equal(t, "someone", info.Name)
	require.Equal(t, "someone@example.com", info.Email)
	require.Equal(t, "google", info.LoginMethod)
}

func TestUserInfoPortal(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, constants.PortalGetUserInfoPath, r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "abc", payload["accessToken"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"openId":"open-9","name":"Portal User","email":"p@example.com","platforms":["GitHub","Email"]}`))
	}))
	defer srv.Close()

	c, err := New(portalConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	info, err := c.UserInfo(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, "open-9", info.OpenID)
	require.Equal(t, "Portal User", info.Name)
	require.Equal(t, "email", info.LoginMethod)
}

func TestDeriveLoginMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		platforms []string
		want      string
	}{
		{"empty", nil, "oauth"},
		{"email wins", []string{"google", "email"}, "email"},
		{"primary provider", []string{"github", "google"}, "google"},
		{"named provider", []string{"weibo", "github"}, "github"},
		{"first tag fallback", []string{"Weibo", "qq"}, "weibo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, deriveLoginMethod(tt.platforms))
		})
	}
}
