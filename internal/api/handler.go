package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"audimew-storefront/config"
	"audimew-storefront/internal/admin"
	"audimew-storefront/internal/listing"
	"audimew-storefront/internal/member"
	"audimew-storefront/internal/model"
	"audimew-storefront/internal/mw"
	"audimew-storefront/internal/remote"
	"audimew-storefront/internal/session"
	"audimew-storefront/internal/shop"
)

const (
	loginPath       = "/member/login"
	productListPath = "/product/list"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	cfg      *config.Config
	remote   *remote.Client
	sessions *session.Store
	shop     *shop.Service
	admin    *admin.Service
	log      *zap.Logger
	now      func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(cfg *config.Config, client *remote.Client, sessions *session.Store, log *zap.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		remote:   client,
		sessions: sessions,
		shop:     shop.NewService(client, log.Named("shop")),
		admin:    admin.NewService(client, log.Named("admin")),
		log:      log,
		now:      time.Now,
	}
}

// NewSessionStore creates a session store whose sessions list products and
// concerts through client.
func NewSessionStore(cfg *config.Config, client *remote.Client, log *zap.Logger) *session.Store {
	return session.NewStore(cfg.Session, session.Views{
		Products: func() *listing.View[model.Product] {
			return listing.New[model.Product](client.ListProducts, listing.Options{
				Name:         "products",
				PageSize:     cfg.Catalog.PageSize,
				Categories:   cfg.Catalog.Categories,
				EmptyMessage: listing.ProductsEmptyMessage,
			}, log)
		},
		Concerts: func() *listing.View[model.Concert] {
			return listing.New[model.Concert](client.ListConcerts, listing.Options{
				Name:         "concerts",
				PageSize:     cfg.Events.PageSize,
				Categories:   cfg.Events.Categories,
				EmptyMessage: listing.ConcertsEmptyMessage,
			}, log)
		},
	}, log.Named("session"))
}

func currentSession(c *gin.Context) *session.Session {
	return mw.CurrentSession(c)
}

func int64Param(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}

func pageQuery(c *gin.Context) int {
	p, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || p < 1 {
		return 1
	}
	return p
}

// fail translates a service error into a JSON error response.
func (h *Handler) fail(c *gin.Context, err error) {
	var verr *member.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.Is(err, listing.ErrUnknownCategory), errors.Is(err, listing.ErrInvalidPage):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, shop.ErrLoginRequired):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "redirect": loginPath})
	case errors.Is(err, session.ErrNoSession):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "로그인이 필요한 서비스입니다.", "redirect": "/"})
	case errors.Is(err, session.ErrInvalidToken):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "인증 정보가 유효하지 않습니다.", "redirect": "/"})
	case errors.Is(err, session.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "접근 권한이 없습니다.", "redirect": "/"})
	case errors.Is(err, shop.ErrDeleted), errors.Is(err, shop.ErrSoldOut):
		c.AbortWithStatusJSON(http.StatusGone, gin.H{"error": err.Error(), "redirect": productListPath})
	case errors.Is(err, shop.ErrInvalidPrice):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case remote.StatusCode(err) == http.StatusNotFound:
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case remote.StatusCode(err) == http.StatusUnauthorized, remote.StatusCode(err) == http.StatusForbidden:
		c.AbortWithStatusJSON(remote.StatusCode(err), gin.H{"error": "인증 정보가 유효하지 않습니다."})
	case errors.Is(err, remote.ErrMalformed):
		h.log.Error("storefront API returned an unexpected payload", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "unexpected response from storefront API"})
	default:
		h.log.Error("storefront API call failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "storefront API unavailable"})
	}
}
