package route_catalog

import (
	"log/slog"
	"time"

	"github.com/creatorhub/catalog/api/controller/controller_catalog"
	"github.com/creatorhub/catalog/domain/domain_catalog"
	"github.com/creatorhub/catalog/usecase/usecase_catalog"
	"github.com/creatorhub/catalog/util/media_probe"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Artists        domain_catalog.ArtistRepository
	Contents       domain_catalog.ContentRepository
	Timeout        time.Duration
	MaxUploadBytes int64
	Logger         *slog.Logger
}

func NewCatalogRouter(deps Deps, group *gin.RouterGroup) {
	registry := usecase_catalog.NewArtistUsecase(deps.Artists, deps.Timeout, deps.Logger)
	catalog := usecase_catalog.NewCatalogUsecase(registry, deps.Contents, deps.Timeout)
	pipeline := usecase_catalog.NewContentUsecase(registry, deps.Contents, media_probe.NewProber(), deps.Timeout, deps.Logger)

	artistCtrl := controller_catalog.NewArtistController(registry, catalog, deps.MaxUploadBytes)
	contentCtrl := controller_catalog.NewContentController(pipeline, catalog, deps.MaxUploadBytes)

	artistGroup := group.Group("/artists")
	{
		artistGroup.POST("", artistCtrl.CreateArtist)
		artistGroup.GET("", artistCtrl.GetArtists)
		artistGroup.GET("/:id", artistCtrl.GetArtist)
		artistGroup.PUT("/:id", artistCtrl.UpdateArtist)
		artistGroup.POST("/:id/profile-image", artistCtrl.UploadProfileImage)
		artistGroup.GET("/:id/content", artistCtrl.GetArtistContent)
	}

	contentGroup := group.Group("/content")
	{
		contentGroup.POST("", contentCtrl.CreateContent)
		contentGroup.GET("", contentCtrl.GetContents)
		contentGroup.GET("/:id", contentCtrl.GetContent)
	}
}
