package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audimew-storefront/internal/shop"
)

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type stepRequest struct {
	Quantity int    `json:"quantity"`
	Step     string `json:"step" binding:"required,oneof=increment decrement"`
}

// StepQuantity handles POST /api/products/quantity, the +/- buttons of the
// detail page.
func (h *Handler) StepQuantity(c *gin.Context) {
	var req stepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quantity": shop.NewQuantity(req.Quantity).Step(req.Step)})
}

// GetProduct handles GET /api/products/{pno}. Deleted and sold-out products
// answer 410 with the page to go back to.
func (h *Handler) GetProduct(c *gin.Context) {
	pno, ok := int64Param(c, "pno")
	if !ok {
		return
	}

	detail, err := h.remote.ReadProduct(c.Request.Context(), pno)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := shop.CheckPurchasable(*detail); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, presentProduct(h.remote, *detail))
}

// AddToCart handles POST /api/products/{pno}/cart.
func (h *Handler) AddToCart(c *gin.Context) {
	pno, ok := int64Param(c, "pno")
	if !ok {
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	msg, err := h.shop.AddToCart(c.Request.Context(), currentSession(c), pno, shop.NewQuantity(req.Quantity))
	if err != nil {
		h.fail(c, err)
		return
	}
	// The quantity picker goes back to one after a successful add.
	c.JSON(http.StatusOK, gin.H{"message": msg, "quantity": 1})
}

// DirectPurchase handles POST /api/products/{pno}/purchase.
func (h *Handler) DirectPurchase(c *gin.Context) {
	pno, ok := int64Param(c, "pno")
	if !ok {
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sess := currentSession(c)
	if !sess.LoggedIn() {
		h.fail(c, shop.ErrLoginRequired)
		return
	}

	detail, err := h.remote.ReadProduct(c.Request.Context(), pno)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := shop.CheckPurchasable(*detail); err != nil {
		h.fail(c, err)
		return
	}

	order, err := shop.DirectPurchase(sess, *detail, shop.NewQuantity(req.Quantity), h.now())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
