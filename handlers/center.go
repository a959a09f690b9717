package handlers

import (
	"errors"
	"net/http"

	"hemovida/services/center"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListCentersHandler handles GET /api/centers.
func (h *HandlerBundle) ListCentersHandler(c *gin.Context) {
	centers, err := h.Directory.ListCenters()
	if err != nil {
		h.Logger.Error("ListCentersHandler: fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch centers"})
		return
	}
	c.JSON(http.StatusOK, centers)
}

// CenterSlotsHandler handles GET /api/centers/:id/slots?date=YYYY-MM-DD.
func (h *HandlerBundle) CenterSlotsHandler(c *gin.Context) {
	centerID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	slots, err := h.Directory.SlotsFor(centerID, date)
	if err != nil {
		var badDate *center.InvalidDateError
		if errors.As(err, &badDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": badDate.Error()})
			return
		}
		h.Logger.Error("CenterSlotsHandler: fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch slots"})
		return
	}
	if slots == nil {
		slots = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"centerId": centerID, "date": date, "slots": slots})
}
