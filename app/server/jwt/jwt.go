package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JWT struct {
	key   []byte
	appID string
}

// 会话负载，签出后不可变；服务端不保存会话状态
type Session struct {
	OpenID  string
	AppID   string
	Name    string
	Expires int64 // Unix second
}

func New(key string, appID string) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}

	return &JWT{key: []byte(key), appID: appID}, nil
}

// ParseSession 对所有失败情况一律返回错误：缺失、结构损坏、签名不符、已过期，
// 调用方统一按「无有效会话」处理
func (j *JWT) ParseSession(tokenString string) (*Session, error) {
	// 检查是否有效
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("parse jwt failed: %w", err)
	}

	// 映射字段
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	session := &Session{}
	if openID, ok := claims["openId"].(string); ok {
		session.OpenID = openID
	} else {
		return nil, fmt.Errorf("invalid openId claim")
	}
	if appID, ok := claims["appId"].(string); ok {
		session.AppID = appID
	}
	if name, ok := claims["name"].(string); ok {
		session.Name = name
	}
	if exp, ok := claims["exp"].(float64); ok {
		session.Expires = int64(exp)
	} else {
		return nil, fmt.Errorf("invalid exp claim")
	}

	return session, nil
}

func (j *JWT) SignSession(openID string, name string, ttl time.Duration) (string, error) {
	// 创建声明
	claims := jwt.MapClaims{
		"openId": openID,
		"appId":  j.appID,
		"name":   name,
		"jti":    uuid.NewString(),
		"exp":    time.Now().Add(ttl).Unix(),
	}

	// 创建令牌
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// 签名并返回
	return token.SignedString(j.key)
}
