package reservation_controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/condovia/reservation/booking"
	"github.com/condovia/reservation/logger"
	"github.com/condovia/reservation/utils"
)

// ReservationController exposes the booking engine over HTTP.
type ReservationController struct {
	Engine *booking.Engine
}

func NewReservationController(engine *booking.Engine) *ReservationController {
	return &ReservationController{Engine: engine}
}

type CreateReservationRequest struct {
	UnitID    int64     `json:"unit_id" binding:"required"`
	Area      string    `json:"area" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// respondError maps engine errors onto the HTTP codes the frontend has
// always seen from this endpoint family.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrInvalidInterval):
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_time must be after start_time"})
	case errors.Is(err, booking.ErrQuotaExceeded):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reservation limit reached for this unit (2 in 30 days)"})
	case errors.Is(err, booking.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: cannot reserve for this unit"})
	case errors.Is(err, booking.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
	case errors.Is(err, booking.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflict: area already reserved for this time range"})
	default:
		logger.ErrorLogger.Errorf("Reservation request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// ListReservations returns every reservation for staff callers and the
// caller's own units' reservations for residents.
func (rc *ReservationController) ListReservations(c *gin.Context) {
	caller, err := utils.GetCaller(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	reservations, err := rc.Engine.ListReservations(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	if reservations == nil {
		reservations = []booking.Reservation{}
	}
	c.JSON(http.StatusOK, reservations)
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	caller, err := utils.GetCaller(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	res, err := rc.Engine.CreateReservation(c.Request.Context(), req.UnitID, req.Area, req.StartTime, req.EndTime, caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (rc *ReservationController) CancelReservation(c *gin.Context) {
	caller, err := utils.GetCaller(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("reservation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation id"})
		return
	}

	res, err := rc.Engine.CancelReservation(c.Request.Context(), id, caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CheckAvailability is the advisory pre-flight check used by the frontend
// calendar. A positive answer is not a hold; only a create is authoritative.
func (rc *ReservationController) CheckAvailability(c *gin.Context) {
	area := c.Query("area")
	if area == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "area is required"})
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start_time"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_time must be RFC 3339"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end_time"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_time must be RFC 3339"})
		return
	}

	available, err := rc.Engine.IsAvailable(c.Request.Context(), area, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"area": area, "available": available})
}
