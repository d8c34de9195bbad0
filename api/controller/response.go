package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/creatorhub/catalog/domain"
	"github.com/gin-gonic/gin"
)

const envelopeKey = "catalog-response"

// SuccessResponse 统一成功响应
func SuccessResponse(ctx *gin.Context, key string, data interface{}, count int) {
	SuccessResponseWithStatus(ctx, http.StatusOK, key, data, count)
}

func SuccessResponseWithStatus(ctx *gin.Context, status int, key string, data interface{}, count int) {
	ctx.JSON(status, gin.H{
		envelopeKey: gin.H{
			"status": "ok",
			key:      data,
			"count":  count,
		},
	})
}

// ErrorResponse 统一错误响应
func ErrorResponse(ctx *gin.Context, status int, code, message string) {
	errorResponse(ctx, status, gin.H{
		"status":  "error",
		"code":    code,
		"message": message,
	})
}

func errorResponse(ctx *gin.Context, status int, body gin.H) {
	ctx.AbortWithStatusJSON(status, gin.H{envelopeKey: body})
}

// RespondError 将领域错误映射为 HTTP 状态码
func RespondError(ctx *gin.Context, err error) {
	var validation *domain.ValidationError
	var notFound *domain.NotFoundError

	switch {
	case errors.As(err, &validation):
		errorResponse(ctx, http.StatusBadRequest, gin.H{
			"status":  "error",
			"code":    "VALIDATION_ERROR",
			"message": validation.Error(),
			"field":   validation.Field,
		})
	case errors.As(err, &notFound):
		errorResponse(ctx, http.StatusNotFound, gin.H{
			"status":  "error",
			"code":    "NOT_FOUND",
			"message": notFound.Error(),
			"entity":  notFound.Entity,
		})
	default:
		slog.ErrorContext(ctx.Request.Context(), "request failed",
			"event", "request_failed",
			"module", "api/controller",
			"layer", "transport",
			"path", ctx.FullPath(),
			"error", err,
		)
		ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", "internal server error")
	}
}
