package handlers

import (
	"errors"
	"net/http"

	"aarogya/middleware"
	"aarogya/services/booking"
	"aarogya/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the reservation engine over HTTP.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// GetAvailability handles GET /api/bookings/availability.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	req := booking.AvailabilityRequest{
		ServiceID:           c.Query("serviceId"),
		Date:                c.Query("date"),
		PreferredProviderID: c.Query("providerId"),
	}

	slots, err := h.Svc.ComputeAvailability(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": req.Date, "slots": slots})
}

// Reserve handles POST /api/bookings.
func (h *BookingHandler) Reserve(c *gin.Context) {
	var req booking.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	req.CustomerID = middleware.CallerID(c)

	created, err := h.Svc.Reserve(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Reschedule handles PUT /api/bookings/:id/reschedule.
func (h *BookingHandler) Reschedule(c *gin.Context) {
	var req booking.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	req.BookingID = c.Param("id")
	req.CustomerID = middleware.CallerID(c)

	updated, err := h.Svc.Reschedule(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Cancel handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) Cancel(c *gin.Context) {
	if err := h.Svc.Cancel(c.Request.Context(), c.Param("id"), middleware.CallerID(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	found, err := h.Svc.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if found.CustomerID != middleware.CallerID(c) {
		utils.JSONError(c, http.StatusNotFound, "not found", "booking not found")
		return
	}
	c.JSON(http.StatusOK, found)
}

// ListMyBookings handles GET /api/bookings.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	bookings, err := h.Svc.GetCustomerBookings(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// writeError maps engine error kinds onto HTTP statuses. Slot conflicts
// name the colliding slot so the UI can tell the user which one is gone.
func (h *BookingHandler) writeError(c *gin.Context, err error) {
	var engineErr *booking.Error
	if !errors.As(err, &engineErr) {
		h.Logger.Error("booking request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "please try again later")
		return
	}

	switch engineErr.Kind {
	case booking.KindValidation:
		utils.JSONError(c, http.StatusBadRequest, "invalid request", engineErr.Message)
	case booking.KindNotFound:
		utils.JSONError(c, http.StatusNotFound, "not found", engineErr.Message)
	case booking.KindSlotConflict:
		c.JSON(http.StatusConflict, gin.H{
			"message": "that time is no longer available",
			"conflict": gin.H{
				"resourceId": engineErr.ResourceID,
				"date":       engineErr.Date,
				"time":       engineErr.Time,
			},
		})
	case booking.KindTimeout:
		utils.JSONError(c, http.StatusGatewayTimeout, "timeout", engineErr.Message)
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", engineErr.Message)
	}
}
