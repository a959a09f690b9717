package handlers

import (
	"errors"
	"net/http"

	"hemovida/models"
	"hemovida/services/appointment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// bookingStatus maps a booking/lifecycle rejection to the HTTP status the
// client renders. These are domain-rule rejections, not transient failures;
// the client surfaces the message and does not retry.
func bookingStatus(err error) (int, bool) {
	var notEligible *appointment.NotEligibleError
	var duplicate *appointment.DuplicateAppointmentError
	var invalidSlot *appointment.InvalidSlotError
	var invalidTransition *appointment.InvalidTransitionError
	var notFound *appointment.AppointmentNotFoundError
	var notOwner *appointment.NotOwnerError

	switch {
	case errors.As(err, &notEligible):
		return http.StatusForbidden, true
	case errors.As(err, &duplicate):
		return http.StatusConflict, true
	case errors.As(err, &invalidSlot):
		return http.StatusBadRequest, true
	case errors.As(err, &invalidTransition):
		return http.StatusConflict, true
	case errors.As(err, &notFound):
		return http.StatusNotFound, true
	case errors.As(err, &notOwner):
		return http.StatusForbidden, true
	}
	return 0, false
}

// BookAppointmentHandler handles POST /api/appointments.
func (h *HandlerBundle) BookAppointmentHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	appt, err := h.ApptSvc.Book(userID, req)
	if err != nil {
		if status, ok := bookingStatus(err); ok {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		h.Logger.Error("BookAppointmentHandler: booking failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to book appointment"})
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// GetCurrentAppointmentHandler handles GET /api/appointments/current.
func (h *HandlerBundle) GetCurrentAppointmentHandler(c *gin.Context) {
	userID := c.GetString("userID")

	appt, err := h.ApptSvc.GetCurrent(userID)
	if err != nil {
		h.Logger.Error("GetCurrentAppointmentHandler: fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch appointment"})
		return
	}
	if appt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no appointment"})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// AppointmentHistoryHandler handles GET /api/appointments.
func (h *HandlerBundle) AppointmentHistoryHandler(c *gin.Context) {
	userID := c.GetString("userID")

	appts, err := h.ApptSvc.History(userID)
	if err != nil {
		h.Logger.Error("AppointmentHistoryHandler: fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch appointments"})
		return
	}
	c.JSON(http.StatusOK, appts)
}

// CancelAppointmentHandler handles DELETE /api/appointments/:id.
func (h *HandlerBundle) CancelAppointmentHandler(c *gin.Context) {
	userID := c.GetString("userID")
	apptID := c.Param("id")

	appt, err := h.ApptSvc.Cancel(userID, apptID)
	if err != nil {
		if status, ok := bookingStatus(err); ok {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		h.Logger.Error("CancelAppointmentHandler: cancel failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel appointment"})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// DiscardAppointmentHandler handles DELETE /api/appointments/current. It
// clears the reference to a finished appointment so a new one can be booked.
func (h *HandlerBundle) DiscardAppointmentHandler(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.ApptSvc.Discard(userID); err != nil {
		if status, ok := bookingStatus(err); ok {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		h.Logger.Error("DiscardAppointmentHandler: discard failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to discard appointment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "discarded"})
}

// ConfirmAppointmentHandler handles PUT /api/appointments/:id/confirm. Staff only.
func (h *HandlerBundle) ConfirmAppointmentHandler(c *gin.Context) {
	apptID := c.Param("id")

	appt, err := h.ApptSvc.Confirm(apptID)
	if err != nil {
		if status, ok := bookingStatus(err); ok {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		h.Logger.Error("ConfirmAppointmentHandler: confirm failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm appointment"})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CompleteAppointmentHandler handles PUT /api/appointments/:id/complete. Staff only.
func (h *HandlerBundle) CompleteAppointmentHandler(c *gin.Context) {
	apptID := c.Param("id")

	appt, err := h.ApptSvc.Complete(apptID)
	if err != nil {
		if status, ok := bookingStatus(err); ok {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		h.Logger.Error("CompleteAppointmentHandler: complete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete appointment"})
		return
	}
	c.JSON(http.StatusOK, appt)
}
