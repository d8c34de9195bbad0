package route

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/creatorhub/catalog/api/controller"
	"github.com/creatorhub/catalog/api/middleware"
	"github.com/creatorhub/catalog/api/route/route_catalog"
	"github.com/creatorhub/catalog/bootstrap"
	"github.com/gin-gonic/gin"
)

const serviceBanner = "Creator Catalog API"

func Setup(env *bootstrap.Env, timeout time.Duration, stores *bootstrap.Stores, logger *slog.Logger, engine *gin.Engine) {
	engine.Use(middleware.CORS(env.AllowedOrigins()))
	engine.MaxMultipartMemory = 32 << 20

	api := engine.Group("/api")

	api.GET("/", func(ctx *gin.Context) {
		controller.SuccessResponse(ctx, "message", serviceBanner, 1)
	})
	api.GET("/healthz", func(ctx *gin.Context) {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), timeout)
		defer cancel()
		if err := stores.Ping(pingCtx); err != nil {
			controller.ErrorResponse(ctx, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", err.Error())
			return
		}
		controller.SuccessResponse(ctx, "store", stores.Driver, 1)
	})

	route_catalog.NewCatalogRouter(route_catalog.Deps{
		Artists:        stores.Artists,
		Contents:       stores.Contents,
		Timeout:        timeout,
		MaxUploadBytes: env.MaxUploadBytes(),
		Logger:         logger,
	}, api)
}
