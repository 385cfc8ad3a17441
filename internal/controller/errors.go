package controller

import (
	"errors"
	"net/http"
	"strconv"

	"smartenglish_backend/internal/progress"
	"smartenglish_backend/internal/repository"
	"smartenglish_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError 把服务层错误映射为 HTTP 状态码
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidInput),
		errors.Is(err, util.ErrInvalidDate),
		errors.Is(err, util.ErrUnsupportedAudio):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrFileTooLarge):
		util.Error(ctx, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, util.ErrAlreadySubmitted),
		errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrRecordNotFound),
		errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrInvalidCredentials),
		errors.Is(err, util.ErrAccountDisabled):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// respondCreated 记录已保存但经验未计入时仍返回 201，并附带提示
func respondCreated(ctx *gin.Context, data interface{}, err error) {
	if err == nil {
		util.Created(ctx, data)
		return
	}
	if errors.Is(err, util.ErrXPNotApplied) && data != nil {
		util.CreatedWithWarning(ctx, data, util.ErrXPNotApplied.Error())
		return
	}
	respondError(ctx, err)
}

// parseDateFilter 读取 from/to/order/limit 查询参数
func parseDateFilter(ctx *gin.Context) (repository.DateFilter, error) {
	f := repository.DateFilter{
		From: ctx.Query("from"),
		To:   ctx.Query("to"),
		Desc: ctx.DefaultQuery("order", "desc") != "asc",
	}
	if f.From != "" {
		if _, err := util.ParseDate(f.From); err != nil {
			return f, err
		}
	}
	if f.To != "" {
		if _, err := util.ParseDate(f.To); err != nil {
			return f, err
		}
	}
	if v := ctx.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, util.ErrInvalidInput
		}
		f.Limit = n
	}
	return f, nil
}

// parseWindow 汇总窗口：from/to 闭区间，last 为最近 N 条
func parseWindow(ctx *gin.Context) (progress.Window, error) {
	f, err := parseDateFilter(ctx)
	if err != nil {
		return progress.Window{}, err
	}
	w := progress.Window{From: f.From, To: f.To}
	if v := ctx.Query("last"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return w, util.ErrInvalidInput
		}
		w.Last = n
	}
	return w, nil
}

func currentUserID(ctx *gin.Context) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return 0, false
	}
	return claims.UserID, true
}

func pathID(ctx *gin.Context) (uint, bool) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return 0, false
	}
	return id, true
}
