package constants

import "time"

const (
	CacheKeyUserByOpenID    = "dashboard:user:%s"              // %s -> open id
	CacheKeyWeatherLatest   = "dashboard:records:weather:%d"   // %d -> user id
	CacheKeyEnergyLatest    = "dashboard:records:energy:%d"    // %d -> user id
	CacheKeyLogisticsLatest = "dashboard:records:logistics:%d" // %d -> user id
)

const (
	CacheExpireUser    = 5 * time.Minute // 角色变更最多延迟这么久生效
	CacheExpireRecords = 1 * time.Hour
)
