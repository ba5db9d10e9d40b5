package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/GianSanchez-dev/hooping-week/internal/api"
	"github.com/GianSanchez-dev/hooping-week/internal/auth"
	"github.com/GianSanchez-dev/hooping-week/internal/schedule"
	"github.com/GianSanchez-dev/hooping-week/internal/venue"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Submit godoc
// @Summary      Submit booking request
// @Description  Creates a pending booking. No conflict check runs at submission; conflicts are resolved at approval time.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      SubmitRequest  true  "Booking request"
// @Success      201      {object}  Booking
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      422      {object}  api.ErrorResponse
// @Router       /bookings [post]
func (h *Handler) Submit(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.BindingError(err))
		return
	}

	b, err := h.svc.Submit(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": "start must be before end"})
		case errors.Is(err, venue.ErrVenueNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		case errors.Is(err, ErrVenueInactive):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Venue is under maintenance"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, b)
}

// List godoc
// @Summary      List bookings as calendar events
// @Description  Returns bookings matching the filters, shaped for the calendar UI.
// @Tags         bookings
// @Produce      json
// @Param        venueId  query     int     false  "Venue ID"
// @Param        userId   query     int     false  "Owner user ID"
// @Param        status   query     string  false  "Status filter"
// @Param        start    query     string  false  "Window start (RFC 3339)"
// @Param        end      query     string  false  "Window end (RFC 3339)"
// @Success      200      {array}   CalendarEvent
// @Failure      400      {object}  api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) List(c *gin.Context) {
	f, err := parseListFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, events)
}

func parseListFilters(c *gin.Context) (ListFilters, error) {
	var f ListFilters

	if raw := c.Query("venueId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return f, errors.New("invalid venueId")
		}
		f.VenueID = id
	}
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return f, errors.New("invalid userId")
		}
		f.UserID = id
	}
	f.Status = c.Query("status")
	if raw := c.Query("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, errors.New("invalid start, expected RFC 3339")
		}
		f.Start = t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, errors.New("invalid end, expected RFC 3339")
		}
		f.End = t
	}

	return f, nil
}

// Decide godoc
// @Summary      Approve or reject a pending booking
// @Description  Admin only. Approval re-runs the conflict check against everything committed; on conflict the booking stays pending and the response names the blocking entry.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        bookingID  path      int            true  "Booking ID"
// @Param        request    body      DecideRequest  true  "Decision"
// @Success      200        {object}  Booking
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Router       /admin/bookings/{bookingID}/status [patch]
func (h *Handler) Decide(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("bookingID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.BindingError(err))
		return
	}

	b, err := h.svc.Decide(c.Request.Context(), id, req.Status == StatusApproved)
	if err != nil {
		var conflict *ConflictError
		switch {
		case errors.As(err, &conflict):
			c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "Booking is not pending"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		}
		return
	}

	c.JSON(http.StatusOK, b)
}

// Cancel godoc
// @Summary      Cancel a booking
// @Description  Owners cancel their own pending or approved bookings. Admins may also remove administrative blocks.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  api.MessageResponse
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Router       /bookings/{bookingID} [delete]
func (h *Handler) Cancel(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseInt(c.Param("bookingID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	if err := h.svc.Cancel(c.Request.Context(), id, userID, auth.IsAdmin(c)); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Can only cancel own bookings"})
		case errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "Booking cannot be cancelled in its current status"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}

// CreateBlock godoc
// @Summary      Create one-off block
// @Description  Admin only. Commits a blocked interval directly; overlapping an existing commitment surfaces a conflict instead of silently failing.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBlockRequest  true  "Block data"
// @Success      201      {object}  Booking
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /admin/blocks [post]
func (h *Handler) CreateBlock(c *gin.Context) {
	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.BindingError(err))
		return
	}

	b, err := h.svc.CreateBlock(c.Request.Context(), req)
	if err != nil {
		var conflict *ConflictError
		switch {
		case errors.As(err, &conflict):
			c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
		case errors.Is(err, schedule.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": "start must be before end"})
		case errors.Is(err, venue.ErrVenueNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create block"})
		}
		return
	}

	c.JSON(http.StatusCreated, b)
}

// WeeklyOccupancy godoc
// @Summary      Weekly occupancy for a venue
// @Description  Aggregates committed hours per day over the 7 days starting at the anchor date.
// @Tags         venues
// @Produce      json
// @Param        venueID  path      int     true   "Venue ID"
// @Param        anchor   query     string  false  "Anchor date (RFC 3339, defaults to now)"
// @Success      200      {object}  OccupancyReport
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /venues/{venueID}/occupancy [get]
func (h *Handler) WeeklyOccupancy(c *gin.Context) {
	venueID, err := strconv.ParseInt(c.Param("venueID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid venue ID"})
		return
	}

	anchor := time.Now()
	if raw := c.Query("anchor"); raw != "" {
		anchor, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anchor, expected RFC 3339"})
			return
		}
	}

	report, err := h.svc.WeeklyOccupancy(c.Request.Context(), venueID, anchor)
	if err != nil {
		if errors.Is(err, venue.ErrVenueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate occupancy"})
		return
	}

	c.JSON(http.StatusOK, report)
}
