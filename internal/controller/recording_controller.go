package controller

import (
	"smartenglish_backend/internal/service"
	"smartenglish_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecordingController struct {
	RecordingService *service.RecordingService
}

func NewRecordingController(recordingService *service.RecordingService) *RecordingController {
	return &RecordingController{RecordingService: recordingService}
}

// Upload godoc
// @Summary 上传录音
// @Tags 录音
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param file formData file true "音频文件"
// @Param recordedOn formData string false "录制日期 YYYY-MM-DD"
// @Param note formData string false "备注"
// @Success 201 {object} util.Response{data=model.AudioRecording}
// @Failure 400 {object} util.Response "不支持的文件"
// @Failure 413 {object} util.Response "文件过大"
// @Router /api/recordings [post]
func (c *RecordingController) Upload(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	rec, err := c.RecordingService.Upload(ctx.Request.Context(), userID, service.UploadInput{
		Filename:   fileHeader.Filename,
		Size:       fileHeader.Size,
		Reader:     file,
		RecordedOn: ctx.PostForm("recordedOn"),
		Note:       ctx.PostForm("note"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, rec)
}

// List godoc
// @Summary 我的录音
// @Description 每条录音附带限时签名链接，链接生成失败的条目 available 为 false
// @Tags 录音
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.RecordingItem}
// @Router /api/recordings [get]
func (c *RecordingController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	items, err := c.RecordingService.List(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// @Summary 删除录音
// @Tags 录音
// @Security ApiKeyAuth
// @Param id path string true "录音ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/recordings/{id} [delete]
func (c *RecordingController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.RecordingService.Delete(ctx.Request.Context(), claims.UserID, claims.Role, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
