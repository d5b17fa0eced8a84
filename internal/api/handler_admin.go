package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"audimew-storefront/internal/admin"
)

var errBadUpload = errors.New("missing or unreadable upload")

// GetAdminProduct handles GET /api/admin/products/{pno}.
func (h *Handler) GetAdminProduct(c *gin.Context) {
	pno, ok := int64Param(c, "pno")
	if !ok {
		return
	}

	p, form, err := h.admin.Load(c.Request.Context(), currentSession(c), pno)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product": p,
		"form":    form,
		"preview": h.remote.ProductThumbnailURL(*p),
	})
}

// PutAdminProduct handles PUT /api/admin/products/{pno}. The body is a
// multipart form; an optional files part replaces the product image.
func (h *Handler) PutAdminProduct(c *gin.Context) {
	pno, ok := int64Param(c, "pno")
	if !ok {
		return
	}
	var form admin.ModifyForm
	if err := c.ShouldBind(&form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var upload *admin.Upload
	if fh, err := c.FormFile("files"); err == nil {
		f, err := fh.Open()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errBadUpload.Error()})
			return
		}
		defer f.Close()
		upload = &admin.Upload{Filename: fh.Filename, Body: f}
	}

	msg, err := h.admin.Modify(c.Request.Context(), currentSession(c), pno, form, upload)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "redirect": "/admin/products/list"})
}
