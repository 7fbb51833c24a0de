package constants

import "time"

// OAuth 出站请求的超时时间，上游挂起时不能拖死请求
const OAuthRequestTimeout = 10 * time.Second

// 直连流程的默认端点
const (
	DefaultTokenEndpoint    = "https://oauth2.googleapis.com/token"
	DefaultUserInfoEndpoint = "https://openidconnect.googleapis.com/v1/userinfo"
)

// 门户流程的端点路径
const (
	PortalExchangeTokenPath = "/webdev.v1.WebDevAuthPublicService/ExchangeToken"
	PortalGetUserInfoPath   = "/webdev.v1.WebDevAuthPublicService/GetUserInfo"
)
