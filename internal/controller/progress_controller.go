package controller

import (
	"smartenglish_backend/internal/service"
	"smartenglish_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
	ReportService   *service.ReportService
}

func NewProgressController(progressService *service.ProgressService, reportService *service.ReportService) *ProgressController {
	return &ProgressController{
		ProgressService: progressService,
		ReportService:   reportService,
	}
}

// SubmitDaily godoc
// @Summary 提交每日学习记录
// @Description 每个日期只能提交一次。记录保存后经验未能计入时仍返回 201，message 中给出提示。
// @Tags 学习记录
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.DailyInput true "每日表单"
// @Success 201 {object} util.Response{data=model.DailyProgress}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "当天已提交"
// @Router /api/progress/daily [post]
func (c *ProgressController) SubmitDaily(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.DailyInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.ProgressService.SubmitDaily(ctx.Request.Context(), userID, req)
	if record == nil {
		respondError(ctx, err)
		return
	}
	respondCreated(ctx, record, err)
}

// ListDaily godoc
// @Summary 每日记录列表
// @Tags 学习记录
// @Produce  json
// @Security ApiKeyAuth
// @Param from query string false "开始日期 YYYY-MM-DD"
// @Param to query string false "结束日期 YYYY-MM-DD"
// @Param order query string false "asc 或 desc，默认 desc"
// @Param limit query int false "最多返回条数"
// @Success 200 {object} util.Response{data=[]model.DailyProgress}
// @Router /api/progress/daily [get]
func (c *ProgressController) ListDaily(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	filter, err := parseDateFilter(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	list, err := c.ProgressService.ListDaily(ctx.Request.Context(), userID, filter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// GetDaily godoc
// @Summary 指定日期的记录
// @Tags 学习记录
// @Produce  json
// @Security ApiKeyAuth
// @Param date path string true "日期 YYYY-MM-DD"
// @Success 200 {object} util.Response{data=model.DailyProgress}
// @Failure 404 {object} util.Response
// @Router /api/progress/daily/{date} [get]
func (c *ProgressController) GetDaily(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	record, err := c.ProgressService.GetDaily(ctx.Request.Context(), userID, ctx.Param("date"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, record)
}

// SubmitWeekly godoc
// @Summary 提交周总结
// @Tags 学习记录
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.WeeklyInput true "周报表单"
// @Success 201 {object} util.Response{data=model.WeeklyProgress}
// @Failure 409 {object} util.Response "本周已提交"
// @Router /api/progress/weekly [post]
func (c *ProgressController) SubmitWeekly(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.WeeklyInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	report, err := c.ReportService.SubmitWeekly(ctx.Request.Context(), userID, req)
	if report == nil {
		respondError(ctx, err)
		return
	}
	respondCreated(ctx, report, err)
}

// ListWeekly godoc
// @Summary 周总结列表
// @Tags 学习记录
// @Produce  json
// @Security ApiKeyAuth
// @Param from query string false "开始日期 YYYY-MM-DD"
// @Param to query string false "结束日期 YYYY-MM-DD"
// @Param order query string false "asc 或 desc，默认 desc"
// @Param limit query int false "最多返回条数"
// @Success 200 {object} util.Response{data=[]model.WeeklyProgress}
// @Router /api/progress/weekly [get]
func (c *ProgressController) ListWeekly(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	filter, err := parseDateFilter(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	list, err := c.ReportService.ListWeekly(ctx.Request.Context(), userID, filter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// SubmitMonthly godoc
// @Summary 提交月总结
// @Tags 学习记录
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.MonthlyInput true "月报表单"
// @Success 201 {object} util.Response{data=model.MonthlyProgress}
// @Failure 409 {object} util.Response "本月已提交"
// @Router /api/progress/monthly [post]
func (c *ProgressController) SubmitMonthly(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.MonthlyInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	report, err := c.ReportService.SubmitMonthly(ctx.Request.Context(), userID, req)
	if report == nil {
		respondError(ctx, err)
		return
	}
	respondCreated(ctx, report, err)
}

// ListMonthly godoc
// @Summary 月总结列表
// @Description 日期参数按所在月份过滤
// @Tags 学习记录
// @Produce  json
// @Security ApiKeyAuth
// @Param from query string false "开始日期 YYYY-MM-DD"
// @Param to query string false "结束日期 YYYY-MM-DD"
// @Param order query string false "asc 或 desc，默认 desc"
// @Param limit query int false "最多返回条数"
// @Success 200 {object} util.Response{data=[]model.MonthlyProgress}
// @Router /api/progress/monthly [get]
func (c *ProgressController) ListMonthly(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	filter, err := parseDateFilter(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	list, err := c.ReportService.ListMonthly(ctx.Request.Context(), userID, filter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}
