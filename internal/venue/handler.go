package venue

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/GianSanchez-dev/hooping-week/internal/api"
	"github.com/GianSanchez-dev/hooping-week/internal/schedule"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// ListVenues godoc
// @Summary      List venues
// @Description  Returns all venues with their settings, including recurring blackout windows.
// @Tags         venues
// @Produce      json
// @Success      200  {array}   Venue
// @Failure      500  {object}  api.ErrorResponse
// @Router       /venues [get]
func (h *Handler) ListVenues(c *gin.Context) {
	venues, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch venues"})
		return
	}

	c.JSON(http.StatusOK, venues)
}

// GetVenue godoc
// @Summary      Get venue
// @Tags         venues
// @Produce      json
// @Param        venueID  path      int  true  "Venue ID"
// @Success      200      {object}  Venue
// @Failure      404      {object}  api.ErrorResponse
// @Router       /venues/{venueID} [get]
func (h *Handler) GetVenue(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("venueID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid venue ID"})
		return
	}

	v, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch venue"})
		return
	}

	c.JSON(http.StatusOK, v)
}

// CreateVenue godoc
// @Summary      Create venue
// @Description  Admin only. Creates a venue, optionally with recurring blackout windows.
// @Tags         venues
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateVenueRequest  true  "Venue data"
// @Success      201      {object}  Venue
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/venues [post]
func (h *Handler) CreateVenue(c *gin.Context) {
	var req CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.BindingError(err))
		return
	}

	v, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidClockTime) || errors.Is(err, schedule.ErrInvalidWeekday) || errors.Is(err, schedule.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create venue"})
		return
	}

	c.JSON(http.StatusCreated, v)
}

// UpdateVenue godoc
// @Summary      Update venue
// @Description  Admin only. Partial update; a settings payload replaces the recurring block list.
// @Tags         venues
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        venueID  path      int                 true  "Venue ID"
// @Param        request  body      UpdateVenueRequest  true  "Fields to update"
// @Success      200      {object}  Venue
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /admin/venues/{venueID} [put]
func (h *Handler) UpdateVenue(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("venueID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid venue ID"})
		return
	}

	var req UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.BindingError(err))
		return
	}

	v, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrVenueNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		case errors.Is(err, schedule.ErrInvalidClockTime), errors.Is(err, schedule.ErrInvalidWeekday), errors.Is(err, schedule.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update venue"})
		}
		return
	}

	c.JSON(http.StatusOK, v)
}

// DeleteVenue godoc
// @Summary      Delete venue
// @Tags         venues
// @Security     BearerAuth
// @Produce      json
// @Param        venueID  path      int  true  "Venue ID"
// @Success      200      {object}  api.MessageResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /admin/venues/{venueID} [delete]
func (h *Handler) DeleteVenue(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("venueID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid venue ID"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete venue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Venue deleted successfully"})
}
