package controller_catalog

import (
	"net/http"

	"github.com/creatorhub/catalog/api/controller"
	"github.com/creatorhub/catalog/domain/domain_catalog"
	"github.com/gin-gonic/gin"
)

type ContentController struct {
	IngestUsecase  domain_catalog.IngestionPipeline
	CatalogUsecase domain_catalog.CatalogQuery
	MaxUploadBytes int64
}

func NewContentController(
	pipeline domain_catalog.IngestionPipeline,
	catalog domain_catalog.CatalogQuery,
	maxUploadBytes int64,
) *ContentController {
	return &ContentController{
		IngestUsecase:  pipeline,
		CatalogUsecase: catalog,
		MaxUploadBytes: maxUploadBytes,
	}
}

func (c *ContentController) CreateContent(ctx *gin.Context) {
	file, err := readUpload(ctx, c.MaxUploadBytes)
	if err != nil {
		respondUploadError(ctx, err)
		return
	}

	content, err := c.IngestUsecase.Ingest(ctx.Request.Context(), domain_catalog.Submission{
		ArtistID:     ctx.PostForm("artist_id"),
		Title:        ctx.PostForm("title"),
		Description:  ctx.PostForm("description"),
		RawTags:      ctx.PostForm("tags"),
		FileName:     file.Name,
		DeclaredType: file.MediaType,
		Data:         file.Data,
	})
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}

	owner, err := c.CatalogUsecase.ResolveOwner(ctx.Request.Context(), content)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	controller.SuccessResponseWithStatus(ctx, http.StatusCreated, "content", NewContentResponse(content, owner), 1)
}

func (c *ContentController) GetContents(ctx *gin.Context) {
	skip, limit, err := parsePage(ctx)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
		return
	}

	filter := domain_catalog.ContentFilter{
		ArtistID: ctx.Query("artist_id"),
		Search:   ctx.Query("search"),
		Skip:     skip,
		Limit:    limit,
	}
	if raw := ctx.Query("category"); raw != "" {
		category, err := domain_catalog.ParseRenderingCategory(raw)
		if err != nil {
			controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
			return
		}
		filter.Category = category
	}

	contents, err := c.CatalogUsecase.ListContent(ctx.Request.Context(), filter)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}

	// 同一请求内缓存已解析的艺术家
	owners := make(map[string]*domain_catalog.Artist)
	items := make([]ContentResponse, 0, len(contents))
	for _, content := range contents {
		owner, seen := owners[content.ArtistID]
		if !seen {
			owner, err = c.CatalogUsecase.ResolveOwner(ctx.Request.Context(), content)
			if err != nil {
				controller.RespondError(ctx, err)
				return
			}
			owners[content.ArtistID] = owner
		}
		items = append(items, NewContentResponse(content, owner))
	}

	controller.SuccessResponse(ctx, "contents", items, len(items))
}

func (c *ContentController) GetContent(ctx *gin.Context) {
	content, err := c.CatalogUsecase.GetContent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}

	owner, err := c.CatalogUsecase.ResolveOwner(ctx.Request.Context(), content)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	controller.SuccessResponse(ctx, "content", NewContentResponse(content, owner), 1)
}
