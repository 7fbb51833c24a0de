package oauth

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"insight-dashboard/app/server/config"
	"insight-dashboard/app/server/constants"

	"go.uber.org/zap"
)

// 两种流程在启动时确定一次，不在调用时猜测
type Flow int

const (
	FlowDirect Flow = iota // 直连身份提供方
	FlowPortal             // 经由 OAuth 门户服务
)

type Client struct {
	flow         Flow
	appID        string
	clientSecret string
	portalURL    string

	// 直连流程端点，测试时可替换
	tokenEndpoint    string
	userInfoEndpoint string

	hc *http.Client
	l  *zap.Logger
}

func New(cfg *config.Config, l *zap.Logger) (*Client, error) {
	c := &Client{
		appID:            cfg.OAuth.AppID,
		clientSecret:     cfg.OAuth.ClientSecret,
		portalURL:        strings.TrimSuffix(cfg.OAuth.PortalURL, "/"),
		tokenEndpoint:    constants.DefaultTokenEndpoint,
		userInfoEndpoint: constants.DefaultUserInfoEndpoint,
		hc:               &http.Client{Timeout: constants.OAuthRequestTimeout},
		l:                l,
	}

	// 选择流程：门户优先，其次直连凭据
	switch {
	case c.portalURL != "":
		c.flow = FlowPortal
	case c.appID != "" && c.clientSecret != "":
		c.flow = FlowDirect
	default:
		return nil, ErrNotConfigured
	}

	return c, nil
}

func (c *Client) Flow() Flow {
	return c.flow
}

// DecodeState 还原授权时使用的跳转地址； state 是 URL 安全 base64 编码的 redirect_uri ，
// 把交换绑定到当初的回调目标上
func DecodeState(state string) string {
	if state == "" {
		return ""
	}

	normalized := strings.ReplaceAll(strings.ReplaceAll(state, "-", "+"), "_", "/")
	if m := len(normalized) % 4; m != 0 {
		normalized += strings.Repeat("=", 4-m)
	}

	raw, err := base64.StdEncoding.DecodeString(normalized)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(raw))
}

func (c *Client) ExchangeCode(ctx context.Context, code string, state string) (*Token, error) {
	redirectURI := DecodeState(state)

	if c.flow == FlowPortal {
		return c.exchangeCodePortal(ctx, code, redirectURI)
	}
	return c.exchangeCodeDirect(ctx, code, redirectURI)
}

func (c *Client) exchangeCodeDirect(ctx context.Context, code string, redirectURI string) (*Token, error) {
	// code 可能已经被 URL 编码过一次
	if strings.Contains(code, "%") {
		if decoded, err := url.QueryUnescape(code); err == nil {
			code = decoded
		}
	}

	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", c.appID)
	form.Set("client_secret", c.clientSecret)
	form.Set("redirect_uri", redirectURI)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var res struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
		IDToken     string `json:"id_token"`
		Scope       string `json:"scope"`
	}
	if err := c.do(req, &res); err != nil {
		return nil, err
	}

	return &Token{
		AccessToken: res.AccessToken,
		TokenType:   res.TokenType,
		ExpiresIn:   res.ExpiresIn,
		IDToken:     res.IDToken,
		Scope:       res.Scope,
	}, nil
}

func (c *Client) exchangeCodePortal(ctx context.Context, code string, redirectURI string) (*Token, error) {
	payload := map[string]string{
		"clientId":    c.appID,
		"grantType":   "authorization_code",
		"code":        code,
		"redirectUri": redirectURI,
	}

	var token Token
	if err := c.postJSON(ctx, c.portalURL+constants.PortalExchangeTokenPath, payload, &token); err != nil {
		return nil, err
	}

	return &token, nil
}

func (c *Client) UserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	if c.flow == FlowPortal {
		return c.userInfoPortal(ctx, accessToken)
	}
	return c.userInfoDirect(ctx, accessToken)
}

func (c *Client) userInfoDirect(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var res struct {
		Sub   string `json:"sub"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.do(req, &res); err != nil {
		return nil, err
	}

	// 没有名字时退回邮箱的本地部分
	name := res.Name
	if name == "" && res.Email != "" {
		name = strings.SplitN(res.Email, "@", 2)[0]
	}
	if name == "" {
		name = "User"
	}

	return &UserInfo{
		OpenID:      res.Sub,
		Name:        name,
		Email:       res.Email,
		LoginMethod: "google",
	}, nil
}

func (c *Client) userInfoPortal(ctx context.Context, accessToken string) (*UserInfo, error) {
	payload := map[string]string{
		"accessToken": accessToken,
	}

	var res struct {
		OpenID    string   `json:"openId"`
		Name      string   `json:"name"`
		Email     string   `json:"email"`
		Platforms []string `json:"platforms"`
	}
	if err := c.postJSON(ctx, c.portalURL+constants.PortalGetUserInfoPath, payload, &res); err != nil {
		return nil, err
	}

	return &UserInfo{
		OpenID:      res.OpenID,
		Name:        res.Name,
		Email:       res.Email,
		LoginMethod: deriveLoginMethod(res.Platforms),
	}, nil
}

// 平台标签的优先顺序：邮箱最高，其次主要身份提供方，再次其他已知提供方
var loginMethodPriority = []string{"email", "google", "github", "apple", "microsoft", "facebook"}

func deriveLoginMethod(platforms []string) string {
	if len(platforms) == 0 {
		return "oauth"
	}

	tags := make(map[string]bool, len(platforms))
	for _, p := range platforms {
		tags[strings.ToLower(p)] = true
	}

	for _, method := range loginMethodPriority {
		if tags[method] {
			return method
		}
	}

	return strings.ToLower(platforms[0])
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		c.l.Error("upstream auth request rejected",
			zap.String("path", req.URL.Path),
			zap.Int("status", res.StatusCode),
		)
		return &UpstreamError{Status: res.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response of %s: %w", req.URL.Path, err)
	}

	return nil
}
