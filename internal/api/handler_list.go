package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"audimew-storefront/internal/listing"
	"audimew-storefront/internal/session"
)

type selectCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

type selectPageRequest struct {
	Page int `json:"page" binding:"required,min=1"`
}

// listHandlers serves one session-owned list view: GET loads the current
// state, POST category and POST page drive its two transitions.
type listHandlers[T, C any] struct {
	h    *Handler
	view func(*session.Session) *listing.View[T]
	card func(T) C
}

func (l listHandlers[T, C]) Load(c *gin.Context) {
	v := l.view(currentSession(c))
	snap, err := v.Load(c.Request.Context())
	l.respond(c, snap, err)
}

func (l listHandlers[T, C]) SelectCategory(c *gin.Context) {
	var req selectCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	v := l.view(currentSession(c))
	snap, err := v.SelectCategory(c.Request.Context(), req.Category)
	l.respond(c, snap, err)
}

func (l listHandlers[T, C]) SelectPage(c *gin.Context) {
	var req selectPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	v := l.view(currentSession(c))
	snap, err := v.SelectPage(c.Request.Context(), req.Page)
	l.respond(c, snap, err)
}

// respond renders the view. A failed fetch leaves the view as it was, so the
// unchanged state is sent along with the error.
func (l listHandlers[T, C]) respond(c *gin.Context, snap listing.Snapshot[T], err error) {
	if err == nil {
		c.JSON(http.StatusOK, presentList(snap, l.card))
		return
	}
	if errors.Is(err, listing.ErrUnknownCategory) || errors.Is(err, listing.ErrInvalidPage) {
		l.h.fail(c, err)
		return
	}
	c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
		"error": "storefront API unavailable",
		"view":  presentList(snap, l.card),
	})
}
