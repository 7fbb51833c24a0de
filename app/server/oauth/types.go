package oauth

import (
	"errors"
	"fmt"
)

// 既没有配置门户地址也没有配置直连凭据
var ErrNotConfigured = errors.New("neither portal url nor direct flow credentials are configured")

// 上游身份提供方拒绝了请求
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream auth request failed with status %d: %s", e.Status, e.Body)
}

// 令牌交换结果
type Token struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
	IDToken     string `json:"idToken"`
	Scope       string `json:"scope"`
}

// 两种流程统一后的用户信息
type UserInfo struct {
	OpenID      string `json:"openId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	LoginMethod string `json:"loginMethod"`
}
