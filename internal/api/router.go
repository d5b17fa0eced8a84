package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"audimew-storefront/internal/listing"
	"audimew-storefront/internal/model"
	"audimew-storefront/internal/mw"
	"audimew-storefront/internal/session"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestLogger(h.log.Named("http")))

	cfg := h.cfg
	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst, cfg.Server.RequestIPHeader)

	ttl := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	caching := mw.Cache(cache.New(ttl, 2*ttl), ttl)

	sessions := mw.Session(h.sessions, cfg.Session.CookieName, int(cfg.Session.TTL.Seconds()))

	products := listHandlers[model.Product, ProductCard]{
		h:    h,
		view: func(s *session.Session) *listing.View[model.Product] { return s.Products },
		card: productCard(h.remote),
	}
	concerts := listHandlers[model.Concert, ConcertCard]{
		h:    h,
		view: func(s *session.Session) *listing.View[model.Concert] { return s.Concerts },
		card: concertCard(h.remote),
	}

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Static data, shared by every session.
		api.GET("/categories/:vertical", caching, GetCategories(cfg))
	}

	s := api.Group("")
	s.Use(sessions)
	{
		s.GET("/products", products.Load)
		s.POST("/products/category", products.SelectCategory)
		s.POST("/products/page", products.SelectPage)
		s.POST("/products/quantity", h.StepQuantity)
		s.GET("/products/:pno", h.GetProduct)
		s.POST("/products/:pno/cart", h.AddToCart)
		s.POST("/products/:pno/purchase", h.DirectPurchase)

		s.GET("/concerts", concerts.Load)
		s.POST("/concerts/category", concerts.SelectCategory)
		s.POST("/concerts/page", concerts.SelectPage)
		s.GET("/concerts/:cno", h.GetConcert)
		s.GET("/concerts/:cno/schedule", h.GetConcertSchedule)

		s.POST("/member/check-id", h.CheckID)
		s.POST("/member/signup", h.Signup)
		s.POST("/auth/login", h.Login)
		s.POST("/auth/logout", h.Logout)

		s.GET("/mypage/:userId", h.GetMyPage)
		s.GET("/mypage/:userId/points", h.GetPoints)
		s.GET("/mypage/:userId/reviews", h.GetReviews)
		s.DELETE("/mypage/:userId/reviews/:reviewNo", h.DeleteReview)
		s.PUT("/mypage/:userId/profile-image", h.PutProfileImage)
		s.DELETE("/mypage/:userId/profile-image", h.DeleteProfileImage)

		s.GET("/admin/products/:pno", h.GetAdminProduct)
		s.PUT("/admin/products/:pno", h.PutAdminProduct)
	}

	return r
}
