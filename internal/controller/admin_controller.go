package controller

import (
	"smartenglish_backend/internal/service"
	"smartenglish_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AnalyticsService *service.AnalyticsService
	ProgressService  *service.ProgressService
	ReportService    *service.ReportService
	RecordingService *service.RecordingService
}

func NewAdminController(
	analyticsService *service.AnalyticsService,
	progressService *service.ProgressService,
	reportService *service.ReportService,
	recordingService *service.RecordingService,
) *AdminController {
	return &AdminController{
		AnalyticsService: analyticsService,
		ProgressService:  progressService,
		ReportService:    reportService,
		RecordingService: recordingService,
	}
}

// Overview godoc
// @Summary 学员概览
// @Description 每个学员一行：经验、等级、记录数、最近提交、平均信心、总时长
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.StudentOverview}
// @Router /api/admin/overview [get]
func (c *AdminController) Overview(ctx *gin.Context) {
	rows, err := c.AnalyticsService.AdminOverview(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// StudentDetail godoc
// @Summary 学员详情
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "学员ID"
// @Param from query string false "开始日期"
// @Param to query string false "结束日期"
// @Param last query int false "最近 N 条"
// @Success 200 {object} util.Response{data=model.StudentDetail}
// @Failure 404 {object} util.Response
// @Router /api/admin/students/{id} [get]
func (c *AdminController) StudentDetail(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	window, err := parseWindow(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	detail, err := c.AnalyticsService.StudentDetail(ctx.Request.Context(), id, window)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary 学员录音
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "学员ID"
// @Success 200 {object} util.Response{data=[]model.RecordingItem}
// @Router /api/admin/students/{id}/recordings [get]
func (c *AdminController) StudentRecordings(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	items, err := c.RecordingService.List(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// UpdateDaily godoc
// @Summary 修改每日记录
// @Description 日期和已发放的经验保持不变
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param id path int true "记录ID"
// @Param body body service.DailyInput true "每日表单"
// @Success 200 {object} util.Response{data=model.DailyProgress}
// @Router /api/admin/progress/daily/{id} [put]
func (c *AdminController) UpdateDaily(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req service.DailyInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.ProgressService.AdminUpdateDaily(ctx.Request.Context(), id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, record)
}

// @Summary 删除每日记录
// @Tags 管理
// @Security ApiKeyAuth
// @Param id path int true "记录ID"
// @Success 200 {object} util.Response
// @Router /api/admin/progress/daily/{id} [delete]
func (c *AdminController) DeleteDaily(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.ProgressService.AdminDeleteDaily(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 删除周总结
// @Tags 管理
// @Security ApiKeyAuth
// @Param id path int true "记录ID"
// @Success 200 {object} util.Response
// @Router /api/admin/progress/weekly/{id} [delete]
func (c *AdminController) DeleteWeekly(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.ReportService.AdminDeleteWeekly(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 删除月总结
// @Tags 管理
// @Security ApiKeyAuth
// @Param id path int true "记录ID"
// @Success 200 {object} util.Response
// @Router /api/admin/progress/monthly/{id} [delete]
func (c *AdminController) DeleteMonthly(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.ReportService.AdminDeleteMonthly(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
