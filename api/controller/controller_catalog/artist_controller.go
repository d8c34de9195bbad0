package controller_catalog

import (
	"net/http"

	"github.com/creatorhub/catalog/api/controller"
	"github.com/creatorhub/catalog/domain"
	"github.com/creatorhub/catalog/domain/domain_catalog"
	"github.com/gin-gonic/gin"
)

type ArtistController struct {
	ArtistUsecase  domain_catalog.ArtistRegistry
	CatalogUsecase domain_catalog.CatalogQuery
	MaxUploadBytes int64
}

func NewArtistController(
	registry domain_catalog.ArtistRegistry,
	catalog domain_catalog.CatalogQuery,
	maxUploadBytes int64,
) *ArtistController {
	return &ArtistController{
		ArtistUsecase:  registry,
		CatalogUsecase: catalog,
		MaxUploadBytes: maxUploadBytes,
	}
}

func (c *ArtistController) CreateArtist(ctx *gin.Context) {
	var req ArtistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	artist, err := c.ArtistUsecase.CreateArtist(ctx.Request.Context(), req.toInput())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}

	controller.SuccessResponseWithStatus(ctx, http.StatusCreated, "artist", NewArtistResponse(artist), 1)
}

func (c *ArtistController) GetArtists(ctx *gin.Context) {
	skip, limit, err := parsePage(ctx)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
		return
	}

	artists, err := c.CatalogUsecase.ListArtists(ctx.Request.Context(), domain_catalog.ArtistFilter{
		Search: ctx.Query("search"),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}

	controller.SuccessResponse(ctx, "artists", NewArtistResponses(artists), len(artists))
}

func (c *ArtistController) GetArtist(ctx *gin.Context) {
	artist, err := c.ArtistUsecase.GetArtist(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}

	controller.SuccessResponse(ctx, "artist", NewArtistResponse(artist), 1)
}

func (c *ArtistController) UpdateArtist(ctx *gin.Context) {
	var req ArtistPatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	artist, err := c.ArtistUsecase.UpdateArtist(ctx.Request.Context(), ctx.Param("id"), req.toPatch())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}

	controller.SuccessResponse(ctx, "artist", NewArtistResponse(artist), 1)
}

func (c *ArtistController) UploadProfileImage(ctx *gin.Context) {
	file, err := readUpload(ctx, c.MaxUploadBytes)
	if err != nil {
		respondUploadError(ctx, err)
		return
	}

	id := ctx.Param("id")
	if err := c.ArtistUsecase.SetProfileImage(ctx.Request.Context(), id, file.MediaType, file.Data); err != nil {
		controller.RespondError(ctx, err)
		return
	}

	artist, err := c.ArtistUsecase.GetArtist(ctx.Request.Context(), id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	controller.SuccessResponse(ctx, "artist", NewArtistResponse(artist), 1)
}

func (c *ArtistController) GetArtistContent(ctx *gin.Context) {
	skip, limit, err := parsePage(ctx)
	if err != nil {
		controller.ErrorResponse(ctx, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
		return
	}

	artistID := ctx.Param("id")
	contents, err := c.CatalogUsecase.ListArtistContent(ctx.Request.Context(), artistID, skip, limit)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}

	// 所有条目归属同一艺术家，只解析一次
	var owner *domain_catalog.Artist
	if len(contents) > 0 {
		owner, err = c.CatalogUsecase.ResolveOwner(ctx.Request.Context(), contents[0])
		if err != nil && !domain.IsNotFound(err) {
			controller.RespondError(ctx, err)
			return
		}
	}

	items := make([]ContentResponse, 0, len(contents))
	for _, content := range contents {
		items = append(items, NewContentResponse(content, owner))
	}
	controller.SuccessResponse(ctx, "contents", items, len(items))
}
