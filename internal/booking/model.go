package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GianSanchez-dev/hooping-week/internal/schedule"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
	StatusBlocked   = "blocked"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrVenueInactive     = errors.New("venue is under maintenance")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotOwner          = errors.New("can only cancel own bookings")
)

// ConflictError reports the committed entry a candidate range collides
// with. The message is shown verbatim by the admin panel, hence the
// CONFLICTO prefix it keys on.
type ConflictError struct {
	With schedule.CommittedInterval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("CONFLICTO: el horario se superpone con %q (%s)", e.With.Title, e.With.Range)
}

type Booking struct {
	ID          int64           `db:"id" json:"id"`
	VenueID     int64           `db:"venue_id" json:"venueId"`
	UserID      int64           `db:"user_id" json:"userId"`
	Title       string          `db:"title" json:"title"`
	StartTime   time.Time       `db:"start_time" json:"start"`
	EndTime     time.Time       `db:"end_time" json:"end"`
	Status      string          `db:"status" json:"status"`
	SportType   string          `db:"sport_type" json:"sportType"`
	Description string          `db:"description" json:"description"`
	Banner      string          `db:"banner" json:"banner"`
	Teams       json.RawMessage `db:"teams" json:"teams"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// Range returns the booking's occupied interval.
func (b *Booking) Range() schedule.TimeRange {
	return schedule.TimeRange{Start: b.StartTime, End: b.EndTime}
}

// IsCommitted reports whether the booking occupies its venue with
// binding force.
func (b *Booking) IsCommitted() bool {
	return b.Status == StatusApproved || b.Status == StatusBlocked
}

// CalendarEvent is the calendar-shaped row returned by GET /bookings.
type CalendarEvent struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Start         time.Time     `json:"start"`
	End           time.Time     `json:"end"`
	ExtendedProps ExtendedProps `json:"extendedProps"`
}

type ExtendedProps struct {
	Status      string          `json:"status"`
	SportType   string          `json:"sportType"`
	Description string          `json:"description,omitempty"`
	VenueID     int64           `json:"venueId"`
	VenueName   string          `json:"venueName"`
	Teams       json.RawMessage `json:"teams"`
	BookedBy    BookedBy        `json:"bookedBy"`
}

type BookedBy struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type SubmitRequest struct {
	VenueID     int64     `json:"venueId" binding:"required"`
	Title       string    `json:"title" binding:"required,min=2,max=160"`
	Start       time.Time `json:"start" binding:"required"`
	End         time.Time `json:"end" binding:"required"`
	SportType   string    `json:"sportType" binding:"required"`
	Description string    `json:"description"`
	Banner      string    `json:"banner" binding:"omitempty,url"`
	Team        []string  `json:"team"`
}

type DecideRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

type CreateBlockRequest struct {
	VenueID int64     `json:"venueId" binding:"required"`
	Title   string    `json:"title" binding:"required,min=2,max=160"`
	Start   time.Time `json:"start" binding:"required"`
	End     time.Time `json:"end" binding:"required"`
}

// ListFilters narrows GET /bookings. Zero values mean "no filter".
type ListFilters struct {
	VenueID int64
	UserID  int64
	Status  string
	Start   time.Time
	End     time.Time
}

// OccupancyReport is the 7-day dashboard aggregate for one venue.
type OccupancyReport struct {
	VenueID    int64                   `json:"venueId"`
	Anchor     time.Time               `json:"anchor"`
	Days       []schedule.OccupancyDay `json:"days"`
	HottestDay int                     `json:"hottestDay"`
}
