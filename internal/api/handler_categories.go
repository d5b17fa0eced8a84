package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audimew-storefront/config"
	"audimew-storefront/internal/model"
)

// GetCategories handles GET /api/categories/{vertical}.
func GetCategories(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lc config.ListingConfig
		switch c.Param("vertical") {
		case "products":
			lc = cfg.Catalog
		case "concerts":
			lc = cfg.Events
		default:
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown vertical"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"categories": lc.Categories,
			"pageSize":   lc.PageSize,
			"default":    model.AllCategory,
		})
	}
}
