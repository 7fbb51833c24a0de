package handlers

import (
	"fmt"
	"net/http"
	"time"

	"insight-dashboard/app/server/constants"
	"insight-dashboard/app/server/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) LogisticsLatest(c echo.Context) error {
	// 抓取 user 信息（认证）
	user, err, statusCode := a.authUser(c)
	if err != nil {
		return a.erAuth(c, err, statusCode)
	}

	rctx := c.Request().Context()

	// 查询缓存
	cacheKey := fmt.Sprintf(constants.CacheKeyLogisticsLatest, user.ID)
	var records []models.LogisticsRecord
	if a.cacheGet(rctx, cacheKey, &records) {
		return c.JSON(http.StatusOK, records)
	}

	// 查询存储
	records, err = a.store.LatestLogisticsRecords(rctx, user.ID, recordQueryLimit)
	if err != nil {
		a.l.Error("failed to get logistics records", zap.Uint("userId", user.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 加入缓存，方便下一次查询
	a.cacheSet(rctx, cacheKey, records, constants.CacheExpireRecords)

	return c.JSON(http.StatusOK, records)
}

func (a *App) LogisticsSave(c echo.Context) error {
	// 抓取 user 信息（认证）
	user, err, statusCode := a.authUser(c)
	if err != nil {
		return a.erAuth(c, err, statusCode)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var record models.LogisticsRecord
	if err := c.Bind(&record); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	record.ID = 0
	record.UserID = user.ID

	start := time.Now()
	err = a.store.SaveLogisticsRecord(rctx, &record)
	a.logApiCall(rctx, user.ID, "logistics", "/api/logistics", http.MethodPost, saveStatus(err), start, err)
	if err != nil {
		a.l.Error("failed to save logistics record", zap.Uint("userId", user.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.cacheDrop(rctx, fmt.Sprintf(constants.CacheKeyLogisticsLatest, user.ID))

	return c.JSON(http.StatusCreated, &record)
}
