package booking

import (
	"context"
	"time"

	"github.com/GianSanchez-dev/hooping-week/internal/schedule"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) (*Booking, error)
	GetByID(ctx context.Context, id int64) (*Booking, error)
	List(ctx context.Context, f ListFilters) ([]CalendarEvent, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to string) error
	Delete(ctx context.Context, id int64) error
	CommittedRanges(ctx context.Context, venueID int64, from, to time.Time) ([]schedule.TimeRange, error)
	WithVenueLock(ctx context.Context, venueID int64, fn func(tx TxStore) error) error
}

// TxStore exposes the mutations that must happen inside a per-venue
// serialized section. Callbacks passed to WithVenueLock receive one;
// its reads see the transaction's snapshot.
type TxStore interface {
	CommittedForVenue(venueID, excludeBookingID int64) ([]schedule.CommittedInterval, error)
	UpdateStatusFrom(id int64, from, to string) error
	InsertBlock(venueID int64, rng schedule.TimeRange, title string) (*Booking, error)
}
