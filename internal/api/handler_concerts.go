package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetConcert handles GET /api/concerts/{cno}.
func (h *Handler) GetConcert(c *gin.Context) {
	cno, ok := int64Param(c, "cno")
	if !ok {
		return
	}

	concert, err := h.remote.ReadConcert(c.Request.Context(), cno)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"concert": concert,
		"card":    concertCard(h.remote)(*concert),
	})
}

// GetConcertSchedule handles GET /api/concerts/{cno}/schedule?startTime=.
func (h *Handler) GetConcertSchedule(c *gin.Context) {
	cno, ok := int64Param(c, "cno")
	if !ok {
		return
	}
	startTime := c.Query("startTime")
	if startTime == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "startTime is required"})
		return
	}

	schedule, err := h.remote.ConcertSchedule(c.Request.Context(), cno, startTime)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"schedule": schedule,
		"soldOut":  schedule.Remaining == 0,
	})
}
