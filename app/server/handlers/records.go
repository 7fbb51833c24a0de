package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"insight-dashboard/app/server/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// 每个列表接口默认返回最近的 10 条
const recordQueryLimit = 10

// 查询缓存，命中时把结果写入 out 。缓存未配置或内容损坏都按未命中处理
func (a *App) cacheGet(ctx context.Context, cacheKey string, out any) bool {
	if a.rdb == nil {
		return false
	}

	cacheBytes, err := a.rdb.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			a.l.Error("failed to query cache", zap.String("key", cacheKey), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(cacheBytes, out); err != nil {
		a.l.Error("failed to unmarshal cache", zap.String("key", cacheKey), zap.Error(err))
		// 可能是无效的缓存，清理掉
		a.rdb.Del(ctx, cacheKey)
		return false
	}

	return true
}

func (a *App) cacheSet(ctx context.Context, cacheKey string, v any, expire time.Duration) {
	if a.rdb == nil {
		return
	}

	if cacheBytes, err := json.Marshal(v); err != nil {
		a.l.Error("failed to marshal cache", zap.String("key", cacheKey), zap.Error(err))
	} else {
		a.rdb.Set(ctx, cacheKey, cacheBytes, expire)
	}
}

func (a *App) cacheDrop(ctx context.Context, cacheKey string) {
	if a.rdb != nil {
		a.rdb.Del(ctx, cacheKey)
	}
}

// 记录一次 API 调用的结果，失败只记日志不影响主流程
func (a *App) logApiCall(ctx context.Context, userID uint, apiName string, endpoint string, method string, statusCode int, start time.Time, callErr error) {
	call := &models.ApiCall{
		UserID:       userID,
		ApiName:      apiName,
		Endpoint:     endpoint,
		Method:       method,
		StatusCode:   statusCode,
		ResponseTime: int(time.Since(start).Milliseconds()),
		Success:      callErr == nil,
	}
	if callErr != nil {
		call.ErrorMessage = callErr.Error()
	}

	if err := a.store.LogApiCall(ctx, call); err != nil {
		a.l.Error("failed to log api call", zap.String("apiName", apiName), zap.Error(err))
	}
}
