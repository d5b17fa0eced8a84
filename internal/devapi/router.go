package devapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"audimew-storefront/internal/mw"
	"audimew-storefront/internal/store"
)

// NewRouter creates the stub storefront API router.
func NewRouter(s store.Store, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestLogger(log.Named("http")))

	h := NewHandler(s, log)

	api := r.Group("/api")
	{
		api.GET("/products/list/:category", h.ListProducts)
		api.GET("/products/read/:pno", h.ReadProduct)

		api.GET("/concert/list/:category", h.ListConcerts)
		api.GET("/concert/read/:cno", h.ReadConcert)
		api.GET("/concert/reservation", h.Reservation)
	}

	return r
}
