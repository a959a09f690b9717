package handlers

import (
	"net/http"
	"strconv"

	"hemovida/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListCampaignsHandler handles GET /api/campaigns.
func (h *HandlerBundle) ListCampaignsHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	campaigns, err := h.CampaignSvc.List(limit)
	if err != nil {
		h.Logger.Error("ListCampaignsHandler: fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch campaigns"})
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

// CreateCampaignHandler handles POST /api/campaigns. Staff only.
func (h *HandlerBundle) CreateCampaignHandler(c *gin.Context) {
	var camp models.Campaign
	if err := c.ShouldBindJSON(&camp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	created, err := h.CampaignSvc.Create(camp)
	if err != nil {
		h.Logger.Error("CreateCampaignHandler: create failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateCampaignHandler handles PUT /api/campaigns/:id. Staff only.
func (h *HandlerBundle) UpdateCampaignHandler(c *gin.Context) {
	var camp models.Campaign
	if err := c.ShouldBindJSON(&camp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}
	camp.ID = c.Param("id")

	updated, err := h.CampaignSvc.Update(camp)
	if err != nil {
		h.Logger.Error("UpdateCampaignHandler: update failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}
