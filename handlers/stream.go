package handlers

import (
	"io"
	"net/http"

	"hemovida/services/updates"

	"github.com/gin-gonic/gin"
)

// AppointmentStreamHandler handles GET /api/appointments/stream. It holds an
// SSE connection open and pushes the donor's appointment snapshots as their
// status changes, unsubscribing when the client disconnects.
func (h *HandlerBundle) AppointmentStreamHandler(c *gin.Context) {
	userID := c.GetString("userID")
	h.stream(c, updates.AppointmentTopic(userID))
}

// CampaignStreamHandler handles GET /api/campaigns/stream: live updates for
// the home feed while the screen is active.
func (h *HandlerBundle) CampaignStreamHandler(c *gin.Context) {
	h.stream(c, updates.TopicCampaigns)
}

func (h *HandlerBundle) stream(c *gin.Context, topic string) {
	ch, cancel := h.Hub.Subscribe(topic)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent(event.Kind, event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
