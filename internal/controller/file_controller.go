package controller

import (
	"net/http"
	"os"
	"strings"

	"smartenglish_backend/internal/service"
	"smartenglish_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// FileController 本地存储的签名下载，签名即凭证，不走登录校验
type FileController struct {
	Local *service.LocalStorageProvider
}

func NewFileController(local *service.LocalStorageProvider) *FileController {
	return &FileController{Local: local}
}

// @Summary 下载录音文件
// @Tags 录音
// @Param key path string true "对象键"
// @Param expires query int true "过期时间戳"
// @Param sig query string true "签名"
// @Success 200 {file} binary
// @Failure 403 {object} util.Response
// @Router /api/files/{key} [get]
func (c *FileController) Serve(ctx *gin.Context) {
	key := strings.TrimPrefix(ctx.Param("key"), "/")
	if err := c.Local.Verify(key, ctx.Query("expires"), ctx.Query("sig")); err != nil {
		util.Error(ctx, http.StatusForbidden, err.Error())
		return
	}

	path := c.Local.Path(key)
	if _, err := os.Stat(path); err != nil {
		util.NotFound(ctx)
		return
	}

	ctx.Header("Cache-Control", "private, max-age=60")
	ctx.Header("Content-Type", util.AudioContentType(key))
	ctx.File(path)
}
