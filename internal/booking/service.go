package booking

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/GianSanchez-dev/hooping-week/internal/logger"
	"github.com/GianSanchez-dev/hooping-week/internal/metrics"
	"github.com/GianSanchez-dev/hooping-week/internal/schedule"
	"github.com/GianSanchez-dev/hooping-week/internal/team"
	"github.com/GianSanchez-dev/hooping-week/internal/user"
	"github.com/GianSanchez-dev/hooping-week/internal/venue"
)

// Notifier queues lifecycle notifications for the booking owner.
// Delivery is asynchronous and failures never block the operation.
type Notifier interface {
	QueueBookingDecision(ctx context.Context, email, name, bookingTitle, venueName string, start, end time.Time, approved bool) error
	QueueBookingCancelled(ctx context.Context, email, name, bookingTitle, venueName string, start, end time.Time) error
}

type Service interface {
	Submit(ctx context.Context, userID int64, req SubmitRequest) (*Booking, error)
	Decide(ctx context.Context, id int64, approve bool) (*Booking, error)
	Cancel(ctx context.Context, id, userID int64, isAdmin bool) error
	CreateBlock(ctx context.Context, req CreateBlockRequest) (*Booking, error)
	List(ctx context.Context, f ListFilters) ([]CalendarEvent, error)
	WeeklyOccupancy(ctx context.Context, venueID int64, anchor time.Time) (*OccupancyReport, error)
}

type service struct {
	repo      Repository
	venueRepo venue.Repository
	teamRepo  team.Repository
	userRepo  user.Repository
	notifier  Notifier
}

func NewService(repo Repository, venueRepo venue.Repository, teamRepo team.Repository, userRepo user.Repository, notifier Notifier) Service {
	return &service{
		repo:      repo,
		venueRepo: venueRepo,
		teamRepo:  teamRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// Submit records a pending request. No conflict check happens here: the
// detector runs when an admin approves, against the state at that
// moment.
func (s *service) Submit(ctx context.Context, userID int64, req SubmitRequest) (*Booking, error) {
	rng, err := schedule.NewTimeRange(req.Start, req.End)
	if err != nil {
		return nil, err
	}

	v, err := s.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}
	if v.Status != venue.StatusActive {
		return nil, ErrVenueInactive
	}

	refs, err := s.teamRepo.SnapshotByNames(ctx, userID, req.Team)
	if err != nil {
		return nil, err
	}
	teams, err := json.Marshal(refs)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &Booking{
		VenueID:     req.VenueID,
		UserID:      userID,
		Title:       req.Title,
		StartTime:   rng.Start,
		EndTime:     rng.End,
		Status:      StatusPending,
		SportType:   req.SportType,
		Description: req.Description,
		Banner:      req.Banner,
		Teams:       teams,
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingsSubmittedTotal.Inc()
	logger.Info("booking submitted", "booking_id", created.ID, "venue_id", created.VenueID, "user_id", userID)

	return created, nil
}

// Decide resolves a pending request. Approval re-runs the conflict
// check under the venue's advisory lock so the read and the status
// flip commit atomically; a losing concurrent approval observes the
// winner's row as committed and fails with ConflictError, leaving its
// own row pending.
func (s *service) Decide(ctx context.Context, id int64, approve bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusPending {
		return nil, ErrInvalidTransition
	}

	if !approve {
		if err := s.repo.UpdateStatusFrom(ctx, id, StatusPending, StatusRejected); err != nil {
			return nil, err
		}
		b.Status = StatusRejected
		metrics.RecordDecision("rejected")
		s.notifyDecision(ctx, b, false)
		return b, nil
	}

	v, err := s.venueRepo.GetByID(ctx, b.VenueID)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithVenueLock(ctx, b.VenueID, func(tx TxStore) error {
		committed, err := tx.CommittedForVenue(b.VenueID, b.ID)
		if err != nil {
			return err
		}

		verdict := schedule.Check(b.Range(), committed, v.Settings.RecurringBlocks)
		if !verdict.Allowed {
			return &ConflictError{With: *verdict.Conflict}
		}

		return tx.UpdateStatusFrom(b.ID, StatusPending, StatusApproved)
	})
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			metrics.RecordConflict()
			logger.Info("approval rejected by conflict check",
				"booking_id", b.ID, "venue_id", b.VenueID, "conflicting_id", conflict.With.BookingID)
		}
		return nil, err
	}

	b.Status = StatusApproved
	metrics.RecordDecision("approved")
	logger.Info("booking approved", "booking_id", b.ID, "venue_id", b.VenueID)
	s.notifyDecision(ctx, b, true)

	return b, nil
}

// Cancel frees a slot. Owners cancel their own pending or approved
// bookings; admins remove blocks outright.
func (s *service) Cancel(ctx context.Context, id, userID int64, isAdmin bool) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if b.Status == StatusBlocked {
		if !isAdmin {
			return ErrNotOwner
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		logger.Info("block removed", "booking_id", id, "venue_id", b.VenueID)
		return nil
	}

	if b.UserID != userID && !isAdmin {
		return ErrNotOwner
	}
	if b.Status != StatusPending && b.Status != StatusApproved {
		return ErrInvalidTransition
	}

	wasApproved := b.Status == StatusApproved
	if err := s.repo.UpdateStatusFrom(ctx, id, b.Status, StatusCancelled); err != nil {
		return err
	}

	metrics.BookingCancellationsTotal.Inc()
	logger.Info("booking cancelled", "booking_id", id, "venue_id", b.VenueID)

	// Only an approved booking held a slot someone may be waiting on.
	if wasApproved {
		s.notifyCancellation(ctx, b)
	}

	return nil
}

// CreateBlock commits an administrative block directly. It runs the
// same conflict check as approval so a block never silently overlaps
// an existing commitment.
func (s *service) CreateBlock(ctx context.Context, req CreateBlockRequest) (*Booking, error) {
	rng, err := schedule.NewTimeRange(req.Start, req.End)
	if err != nil {
		return nil, err
	}

	v, err := s.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}

	var created *Booking
	err = s.repo.WithVenueLock(ctx, req.VenueID, func(tx TxStore) error {
		committed, err := tx.CommittedForVenue(req.VenueID, 0)
		if err != nil {
			return err
		}

		verdict := schedule.Check(rng, committed, v.Settings.RecurringBlocks)
		if !verdict.Allowed {
			return &ConflictError{With: *verdict.Conflict}
		}

		created, err = tx.InsertBlock(req.VenueID, rng, req.Title)
		return err
	})
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			metrics.RecordConflict()
		}
		return nil, err
	}

	metrics.BlocksCreatedTotal.Inc()
	logger.Info("block created", "booking_id", created.ID, "venue_id", created.VenueID)

	return created, nil
}

func (s *service) List(ctx context.Context, f ListFilters) ([]CalendarEvent, error) {
	return s.repo.List(ctx, f)
}

// WeeklyOccupancy aggregates the venue's committed load over the 7
// days starting at anchor's local midnight. Derived data only, never
// consulted for scheduling decisions.
func (s *service) WeeklyOccupancy(ctx context.Context, venueID int64, anchor time.Time) (*OccupancyReport, error) {
	if _, err := s.venueRepo.GetByID(ctx, venueID); err != nil {
		return nil, err
	}

	start := schedule.DateFloor(anchor)
	end := start.AddDate(0, 0, 7)

	ranges, err := s.repo.CommittedRanges(ctx, venueID, start, end)
	if err != nil {
		return nil, err
	}

	days := schedule.Aggregate(ranges, anchor)
	return &OccupancyReport{
		VenueID:    venueID,
		Anchor:     start,
		Days:       days,
		HottestDay: schedule.HottestDay(days),
	}, nil
}

func (s *service) notifyDecision(ctx context.Context, b *Booking, approved bool) {
	if s.notifier == nil || b.UserID == 0 {
		return
	}

	owner, err := s.userRepo.FindByID(ctx, b.UserID)
	if err != nil {
		logger.Error("failed to resolve booking owner for notification", "booking_id", b.ID, "error", err)
		return
	}

	v, err := s.venueRepo.GetByID(ctx, b.VenueID)
	venueName := ""
	if err == nil {
		venueName = v.Name
	}

	if err := s.notifier.QueueBookingDecision(ctx, owner.Email, owner.FullName, b.Title, venueName, b.StartTime, b.EndTime, approved); err != nil {
		logger.Error("failed to queue decision notification", "booking_id", b.ID, "error", err)
	}
}

func (s *service) notifyCancellation(ctx context.Context, b *Booking) {
	if s.notifier == nil || b.UserID == 0 {
		return
	}

	owner, err := s.userRepo.FindByID(ctx, b.UserID)
	if err != nil {
		logger.Error("failed to resolve booking owner for notification", "booking_id", b.ID, "error", err)
		return
	}

	v, err := s.venueRepo.GetByID(ctx, b.VenueID)
	venueName := ""
	if err == nil {
		venueName = v.Name
	}

	if err := s.notifier.QueueBookingCancelled(ctx, owner.Email, owner.FullName, b.Title, venueName, b.StartTime, b.EndTime); err != nil {
		logger.Error("failed to queue cancellation notification", "booking_id", b.ID, "error", err)
	}
}
