package devapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"audimew-storefront/internal/model"
	"audimew-storefront/internal/store"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	timeLayout      = "2006-01-02T15:04:05"
)

// Handler serves the storefront read API from a store.
type Handler struct {
	store store.Store
	log   *zap.Logger
}

// NewHandler creates a new stub API handler.
func NewHandler(s store.Store, log *zap.Logger) *Handler {
	return &Handler{store: s, log: log}
}

type pageQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Size     int    `form:"size" binding:"omitempty,min=1"`
	Category string `form:"category"`
}

// pageRequest reads page, size and the category. The path category wins
// unless it is the all-category and the query names another one.
func pageRequest(c *gin.Context) (model.PageRequest, bool) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid page request"})
		return model.PageRequest{}, false
	}
	req := model.PageRequest{Page: q.Page, Size: q.Size, Category: c.Param("category")}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.Size == 0 {
		req.Size = defaultPageSize
	}
	req.Size = min(req.Size, maxPageSize)
	if (req.Category == "" || req.Category == model.AllCategory) && q.Category != "" {
		req.Category = q.Category
	}
	return req, true
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	h.log.Error("store query failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "database error"})
}

// ListProducts handles GET /api/products/list/{category}.
func (h *Handler) ListProducts(c *gin.Context) {
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	res, err := h.store.ListProducts(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ReadProduct handles GET /api/products/read/{pno}.
func (h *Handler) ReadProduct(c *gin.Context) {
	pno, ok := idParam(c, "pno")
	if !ok {
		return
	}
	d, err := h.store.ReadProduct(c.Request.Context(), pno)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ListConcerts handles GET /api/concert/list/{category}.
func (h *Handler) ListConcerts(c *gin.Context) {
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	res, err := h.store.ListConcerts(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ReadConcert handles GET /api/concert/read/{cno}.
func (h *Handler) ReadConcert(c *gin.Context) {
	cno, ok := idParam(c, "cno")
	if !ok {
		return
	}
	cn, err := h.store.ReadConcert(c.Request.Context(), cno)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cn)
}

// Reservation handles GET /api/concert/reservation?cno=&startTime=.
func (h *Handler) Reservation(c *gin.Context) {
	cno, err := strconv.ParseInt(c.Query("cno"), 10, 64)
	if err != nil || cno <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid cno"})
		return
	}
	start, err := time.ParseInLocation(timeLayout, c.Query("startTime"), time.UTC)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'startTime' format. Use " + timeLayout + "."})
		return
	}

	sc, err := h.store.Schedule(c.Request.Context(), cno, start)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sc)
}
