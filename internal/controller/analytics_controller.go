package controller

import (
	"smartenglish_backend/internal/service"
	"smartenglish_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// Summary godoc
// @Summary 学习汇总
// @Description 时长、信心均值、活动与困难频次、新学表达总数和按日期排序的图表数据
// @Tags 统计
// @Produce  json
// @Security ApiKeyAuth
// @Param from query string false "开始日期 YYYY-MM-DD"
// @Param to query string false "结束日期 YYYY-MM-DD"
// @Param last query int false "只统计最近 N 条"
// @Success 200 {object} util.Response{data=model.ProgressSummary}
// @Router /api/analytics/summary [get]
func (c *AnalyticsController) Summary(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	window, err := parseWindow(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	summary, err := c.AnalyticsService.LearnerSummary(ctx.Request.Context(), userID, window)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}
