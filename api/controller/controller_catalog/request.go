package controller_catalog

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/creatorhub/catalog/api/controller"
	"github.com/creatorhub/catalog/util/media_probe"
	"github.com/gin-gonic/gin"
)

// multipart 表单除文件外的额外余量
const formOverhead = 1 << 20

var errTooLarge = errors.New("upload exceeds size limit")

type upload struct {
	Name      string
	MediaType string
	Data      []byte
}

// readUpload 读取 file 字段；缺少文件时返回空 upload，由业务层校验
func readUpload(ctx *gin.Context, maxBytes int64) (upload, error) {
	if maxBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxBytes+formOverhead)
	}

	header, err := ctx.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return upload{}, nil
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return upload{}, errTooLarge
		}
		return upload{}, fmt.Errorf("parse multipart form: %w", err)
	}
	if maxBytes > 0 && header.Size > maxBytes {
		return upload{}, errTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return upload{}, fmt.Errorf("open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return upload{}, fmt.Errorf("read uploaded file: %w", err)
	}

	return upload{
		Name:      header.Filename,
		MediaType: media_probe.ResolveMediaType(header.Header.Get("Content-Type"), header.Filename, data),
		Data:      data,
	}, nil
}

// respondUploadError 区分超限与格式错误
func respondUploadError(ctx *gin.Context, err error) {
	if errors.Is(err, errTooLarge) {
		controller.ErrorResponse(ctx, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", err.Error())
		return
	}
	controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
}

// parsePage 解析 skip 与 limit，缺省为 0
func parsePage(ctx *gin.Context) (skip, limit int64, err error) {
	parse := func(name string) (int64, error) {
		raw := ctx.Query(name)
		if raw == "" {
			return 0, nil
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid %s parameter", name)
		}
		return v, nil
	}
	if skip, err = parse("skip"); err != nil {
		return 0, 0, err
	}
	if limit, err = parse("limit"); err != nil {
		return 0, 0, err
	}
	return skip, limit, nil
}
