package booking

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/GianSanchez-dev/hooping-week/internal/schedule"
	"github.com/GianSanchez-dev/hooping-week/internal/team"
	"github.com/GianSanchez-dev/hooping-week/internal/user"
	"github.com/GianSanchez-dev/hooping-week/internal/venue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory Repository. WithVenueLock runs callbacks
// sequentially, which is exactly the interleaving the advisory lock
// guarantees: the second approval sees the first one's committed row.
type memRepo struct {
	nextID   int64
	bookings map[int64]*Booking
}

func newMemRepo() *memRepo {
	return &memRepo{bookings: map[int64]*Booking{}}
}

func (r *memRepo) Create(ctx context.Context, b *Booking) (*Booking, error) {
	r.nextID++
	stored := *b
	stored.ID = r.nextID
	r.bookings[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *memRepo) GetByID(ctx context.Context, id int64) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *memRepo) List(ctx context.Context, f ListFilters) ([]CalendarEvent, error) {
	return []CalendarEvent{}, nil
}

func (r *memRepo) UpdateStatusFrom(ctx context.Context, id int64, from, to string) error {
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return ErrInvalidTransition
	}
	b.Status = to
	return nil
}

func (r *memRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.bookings[id]; !ok {
		return ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *memRepo) CommittedRanges(ctx context.Context, venueID int64, from, to time.Time) ([]schedule.TimeRange, error) {
	ranges := []schedule.TimeRange{}
	for _, b := range r.sorted() {
		if b.VenueID == venueID && b.IsCommitted() && b.StartTime.Before(to) && b.EndTime.After(from) {
			ranges = append(ranges, b.Range())
		}
	}
	return ranges, nil
}

func (r *memRepo) WithVenueLock(ctx context.Context, venueID int64, fn func(tx TxStore) error) error {
	return fn(&memTx{repo: r})
}

func (r *memRepo) sorted() []*Booking {
	out := make([]*Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

type memTx struct {
	repo *memRepo
}

func (t *memTx) CommittedForVenue(venueID, excludeBookingID int64) ([]schedule.CommittedInterval, error) {
	committed := []schedule.CommittedInterval{}
	for _, b := range t.repo.sorted() {
		if b.VenueID == venueID && b.IsCommitted() && b.ID != excludeBookingID {
			committed = append(committed, schedule.CommittedInterval{
				BookingID: b.ID,
				Title:     b.Title,
				Range:     b.Range(),
			})
		}
	}
	return committed, nil
}

func (t *memTx) UpdateStatusFrom(id int64, from, to string) error {
	return t.repo.UpdateStatusFrom(context.Background(), id, from, to)
}

func (t *memTx) InsertBlock(venueID int64, rng schedule.TimeRange, title string) (*Booking, error) {
	return t.repo.Create(context.Background(), &Booking{
		VenueID:   venueID,
		Title:     title,
		StartTime: rng.Start,
		EndTime:   rng.End,
		Status:    StatusBlocked,
		SportType: "block",
	})
}

type MockVenueRepo struct {
	mock.Mock
}

func (m *MockVenueRepo) Create(ctx context.Context, name, location, image, status string, settings venue.Settings) (*venue.Venue, error) {
	args := m.Called(ctx, name, location, image, status, settings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*venue.Venue), args.Error(1)
}

func (m *MockVenueRepo) GetByID(ctx context.Context, id int64) (*venue.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*venue.Venue), args.Error(1)
}

func (m *MockVenueRepo) List(ctx context.Context) ([]venue.Venue, error) {
	args := m.Called(ctx)
	return args.Get(0).([]venue.Venue), args.Error(1)
}

func (m *MockVenueRepo) Update(ctx context.Context, v *venue.Venue) (*venue.Venue, error) {
	args := m.Called(ctx, v)
	return args.Get(0).(*venue.Venue), args.Error(1)
}

func (m *MockVenueRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTeamRepo struct {
	mock.Mock
}

func (m *MockTeamRepo) Create(ctx context.Context, userID int64, req team.CreateTeamRequest) (*team.Team, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(*team.Team), args.Error(1)
}

func (m *MockTeamRepo) GetByID(ctx context.Context, id int64) (*team.Team, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*team.Team), args.Error(1)
}

func (m *MockTeamRepo) ListByUser(ctx context.Context, userID int64) ([]team.Team, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]team.Team), args.Error(1)
}

func (m *MockTeamRepo) AddPlayer(ctx context.Context, teamID int64, req team.AddPlayerRequest) (*team.Player, error) {
	args := m.Called(ctx, teamID, req)
	return args.Get(0).(*team.Player), args.Error(1)
}

func (m *MockTeamRepo) DeletePlayer(ctx context.Context, playerID int64) error {
	args := m.Called(ctx, playerID)
	return args.Error(0)
}

func (m *MockTeamRepo) GetPlayer(ctx context.Context, playerID int64) (*team.Player, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(*team.Player), args.Error(1)
}

func (m *MockTeamRepo) SnapshotByNames(ctx context.Context, userID int64, names []string) ([]team.TeamRef, error) {
	args := m.Called(ctx, userID, names)
	return args.Get(0).([]team.TeamRef), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, fullName, email, passwordHash, avatar, role string) (*user.User, error) {
	args := m.Called(ctx, fullName, email, passwordHash, avatar, role)
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type recordingNotifier struct {
	decisions []bool
	cancelled []string
}

func (n *recordingNotifier) QueueBookingDecision(ctx context.Context, email, name, bookingTitle, venueName string, start, end time.Time, approved bool) error {
	n.decisions = append(n.decisions, approved)
	return nil
}

func (n *recordingNotifier) QueueBookingCancelled(ctx context.Context, email, name, bookingTitle, venueName string, start, end time.Time) error {
	n.cancelled = append(n.cancelled, bookingTitle)
	return nil
}

// March 2026: the 2nd is a Monday.
func at(day, hour, min int) time.Time {
	return time.Date(2026, time.March, day, hour, min, 0, 0, time.UTC)
}

func activeVenue(rules ...schedule.RecurringRule) *venue.Venue {
	return &venue.Venue{
		ID:       1,
		Name:     "Cancha Norte",
		Status:   venue.StatusActive,
		Settings: venue.Settings{RecurringBlocks: rules},
	}
}

type fixture struct {
	repo      *memRepo
	venueRepo *MockVenueRepo
	teamRepo  *MockTeamRepo
	userRepo  *MockUserRepo
	notifier  *recordingNotifier
	svc       Service
}

func newFixture(v *venue.Venue) *fixture {
	f := &fixture{
		repo:      newMemRepo(),
		venueRepo: new(MockVenueRepo),
		teamRepo:  new(MockTeamRepo),
		userRepo:  new(MockUserRepo),
		notifier:  &recordingNotifier{},
	}
	if v != nil {
		f.venueRepo.On("GetByID", mock.Anything, v.ID).Return(v, nil)
	}
	f.teamRepo.On("SnapshotByNames", mock.Anything, mock.Anything, mock.Anything).Return([]team.TeamRef{}, nil).Maybe()
	f.userRepo.On("FindByID", mock.Anything, mock.Anything).Return(&user.User{ID: 2, FullName: "Gian Sanchez", Email: "gian@example.com"}, nil).Maybe()
	f.svc = NewService(f.repo, f.venueRepo, f.teamRepo, f.userRepo, f.notifier)
	return f
}

func (f *fixture) submit(t *testing.T, start, end time.Time) *Booking {
	t.Helper()
	b, err := f.svc.Submit(context.Background(), 2, SubmitRequest{
		VenueID:   1,
		Title:     "Partido amistoso",
		Start:     start,
		End:       end,
		SportType: "basketball",
	})
	require.NoError(t, err)
	require.Equal(t, StatusPending, b.Status)
	return b
}

func TestService_Submit(t *testing.T) {
	t.Run("creates pending without conflict check", func(t *testing.T) {
		f := newFixture(activeVenue())

		// Committed block occupying the same slot: submission must
		// still succeed, conflicts are an approval-time concern.
		_, err := f.repo.Create(context.Background(), &Booking{
			VenueID: 1, Title: "Bloqueo", StartTime: at(3, 10, 0), EndTime: at(3, 12, 0), Status: StatusBlocked,
		})
		require.NoError(t, err)

		b := f.submit(t, at(3, 10, 0), at(3, 11, 0))
		assert.Equal(t, StatusPending, b.Status)
		assert.JSONEq(t, "[]", string(b.Teams))
	})

	t.Run("invalid range", func(t *testing.T) {
		f := newFixture(activeVenue())

		_, err := f.svc.Submit(context.Background(), 2, SubmitRequest{
			VenueID: 1, Title: "x", Start: at(3, 11, 0), End: at(3, 10, 0), SportType: "basketball",
		})
		assert.ErrorIs(t, err, schedule.ErrInvalidRange)
	})

	t.Run("venue under maintenance", func(t *testing.T) {
		v := activeVenue()
		v.Status = venue.StatusMaintenance
		f := newFixture(v)

		_, err := f.svc.Submit(context.Background(), 2, SubmitRequest{
			VenueID: 1, Title: "x", Start: at(3, 10, 0), End: at(3, 11, 0), SportType: "basketball",
		})
		assert.ErrorIs(t, err, ErrVenueInactive)
	})

	t.Run("unknown venue", func(t *testing.T) {
		f := newFixture(nil)
		f.venueRepo.On("GetByID", mock.Anything, int64(1)).Return(nil, venue.ErrVenueNotFound)

		_, err := f.svc.Submit(context.Background(), 2, SubmitRequest{
			VenueID: 1, Title: "x", Start: at(3, 10, 0), End: at(3, 11, 0), SportType: "basketball",
		})
		assert.ErrorIs(t, err, venue.ErrVenueNotFound)
	})
}

func TestService_Decide_Approve(t *testing.T) {
	t.Run("clean slot approves and notifies", func(t *testing.T) {
		f := newFixture(activeVenue())
		b := f.submit(t, at(3, 10, 0), at(3, 11, 0))

		decided, err := f.svc.Decide(context.Background(), b.ID, true)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, decided.Status)
		assert.Equal(t, []bool{true}, f.notifier.decisions)
	})

	t.Run("conflict with approved booking leaves it pending", func(t *testing.T) {
		f := newFixture(activeVenue())
		a := f.submit(t, at(3, 14, 0), at(3, 15, 0))
		b := f.submit(t, at(3, 14, 30), at(3, 15, 30))

		_, err := f.svc.Decide(context.Background(), a.ID, true)
		require.NoError(t, err)

		_, err = f.svc.Decide(context.Background(), b.ID, true)
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, a.ID, conflict.With.BookingID)
		assert.Contains(t, conflict.Error(), "CONFLICTO:")

		// Loser stays pending, winner stays approved.
		stored, err := f.repo.GetByID(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, stored.Status)
		winner, err := f.repo.GetByID(context.Background(), a.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, winner.Status)
	})

	t.Run("back to back bookings both approve", func(t *testing.T) {
		f := newFixture(activeVenue())
		a := f.submit(t, at(3, 9, 0), at(3, 10, 0))
		b := f.submit(t, at(3, 10, 0), at(3, 11, 0))

		_, err := f.svc.Decide(context.Background(), a.ID, true)
		require.NoError(t, err)
		_, err = f.svc.Decide(context.Background(), b.ID, true)
		require.NoError(t, err)
	})

	t.Run("recurring rule blocks approval of pending booking", func(t *testing.T) {
		f := newFixture(activeVenue(schedule.RecurringRule{
			Title:      "Liga municipal",
			StartClock: "18:00",
			EndClock:   "20:00",
			DaysOfWeek: []int{1},
		}))

		// 2026-03-02 is a Monday, inside the rule's window.
		b := f.submit(t, at(2, 18, 30), at(2, 19, 0))

		_, err := f.svc.Decide(context.Background(), b.ID, true)
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "Liga municipal", conflict.With.Title)
		assert.Zero(t, conflict.With.BookingID)
	})

	t.Run("reject succeeds regardless of conflicts", func(t *testing.T) {
		f := newFixture(activeVenue())
		b := f.submit(t, at(3, 10, 0), at(3, 11, 0))

		decided, err := f.svc.Decide(context.Background(), b.ID, false)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, decided.Status)
		assert.Equal(t, []bool{false}, f.notifier.decisions)
	})

	t.Run("non-pending booking", func(t *testing.T) {
		f := newFixture(activeVenue())
		b := f.submit(t, at(3, 10, 0), at(3, 11, 0))

		_, err := f.svc.Decide(context.Background(), b.ID, false)
		require.NoError(t, err)

		_, err = f.svc.Decide(context.Background(), b.ID, true)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(activeVenue())
		_, err := f.svc.Decide(context.Background(), 99, true)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("cancelling an approved booking frees the slot", func(t *testing.T) {
		f := newFixture(activeVenue())
		a := f.submit(t, at(3, 14, 0), at(3, 15, 0))
		b := f.submit(t, at(3, 14, 30), at(3, 15, 30))

		_, err := f.svc.Decide(context.Background(), a.ID, true)
		require.NoError(t, err)

		require.NoError(t, f.svc.Cancel(context.Background(), a.ID, 2, false))
		assert.Equal(t, []string{"Partido amistoso"}, f.notifier.cancelled)

		// The slot is free again: the overlapping booking now approves.
		_, err = f.svc.Decide(context.Background(), b.ID, true)
		require.NoError(t, err)
	})

	t.Run("cancelling a pending booking sends no email", func(t *testing.T) {
		f := newFixture(activeVenue())
		b := f.submit(t, at(3, 10, 0), at(3, 11, 0))

		require.NoError(t, f.svc.Cancel(context.Background(), b.ID, 2, false))
		assert.Empty(t, f.notifier.cancelled)
	})

	t.Run("non-owner cannot cancel", func(t *testing.T) {
		f := newFixture(activeVenue())
		b := f.submit(t, at(3, 10, 0), at(3, 11, 0))

		err := f.svc.Cancel(context.Background(), b.ID, 777, false)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("rejected booking cannot be cancelled", func(t *testing.T) {
		f := newFixture(activeVenue())
		b := f.submit(t, at(3, 10, 0), at(3, 11, 0))

		_, err := f.svc.Decide(context.Background(), b.ID, false)
		require.NoError(t, err)

		err = f.svc.Cancel(context.Background(), b.ID, 2, false)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("admin deletes a block outright", func(t *testing.T) {
		f := newFixture(activeVenue())
		block, err := f.svc.CreateBlock(context.Background(), CreateBlockRequest{
			VenueID: 1, Title: "Mantenimiento", Start: at(3, 8, 0), End: at(3, 9, 0),
		})
		require.NoError(t, err)

		require.NoError(t, f.svc.Cancel(context.Background(), block.ID, 0, true))

		_, err = f.repo.GetByID(context.Background(), block.ID)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("member cannot remove a block", func(t *testing.T) {
		f := newFixture(activeVenue())
		block, err := f.svc.CreateBlock(context.Background(), CreateBlockRequest{
			VenueID: 1, Title: "Mantenimiento", Start: at(3, 8, 0), End: at(3, 9, 0),
		})
		require.NoError(t, err)

		err = f.svc.Cancel(context.Background(), block.ID, 2, false)
		assert.ErrorIs(t, err, ErrNotOwner)
	})
}

func TestService_CreateBlock(t *testing.T) {
	t.Run("commits directly as blocked", func(t *testing.T) {
		f := newFixture(activeVenue())

		block, err := f.svc.CreateBlock(context.Background(), CreateBlockRequest{
			VenueID: 1, Title: "Mantenimiento", Start: at(3, 8, 0), End: at(3, 10, 0),
		})
		require.NoError(t, err)
		assert.Equal(t, StatusBlocked, block.Status)
	})

	t.Run("overlap with committed booking surfaces conflict", func(t *testing.T) {
		f := newFixture(activeVenue())
		a := f.submit(t, at(3, 14, 0), at(3, 15, 0))
		_, err := f.svc.Decide(context.Background(), a.ID, true)
		require.NoError(t, err)

		_, err = f.svc.CreateBlock(context.Background(), CreateBlockRequest{
			VenueID: 1, Title: "Mantenimiento", Start: at(3, 14, 30), End: at(3, 16, 0),
		})
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, a.ID, conflict.With.BookingID)
	})

	t.Run("invalid range", func(t *testing.T) {
		f := newFixture(activeVenue())

		_, err := f.svc.CreateBlock(context.Background(), CreateBlockRequest{
			VenueID: 1, Title: "x", Start: at(3, 10, 0), End: at(3, 10, 0),
		})
		assert.ErrorIs(t, err, schedule.ErrInvalidRange)
	})
}

func TestService_WeeklyOccupancy(t *testing.T) {
	t.Run("empty venue yields seven zero days", func(t *testing.T) {
		f := newFixture(activeVenue())

		report, err := f.svc.WeeklyOccupancy(context.Background(), 1, at(2, 9, 30))
		require.NoError(t, err)
		require.Len(t, report.Days, 7)
		for _, d := range report.Days {
			assert.Zero(t, d.Hours)
		}
		assert.Equal(t, -1, report.HottestDay)
	})

	t.Run("committed bookings bucket by start day", func(t *testing.T) {
		f := newFixture(activeVenue())

		a := f.submit(t, at(2, 10, 0), at(2, 12, 0))
		b := f.submit(t, at(4, 18, 0), at(4, 21, 0))
		// Pending never contributes to occupancy.
		f.submit(t, at(2, 14, 0), at(2, 16, 0))

		_, err := f.svc.Decide(context.Background(), a.ID, true)
		require.NoError(t, err)
		_, err = f.svc.Decide(context.Background(), b.ID, true)
		require.NoError(t, err)

		report, err := f.svc.WeeklyOccupancy(context.Background(), 1, at(2, 0, 0))
		require.NoError(t, err)
		assert.InDelta(t, 2.0, report.Days[0].Hours, 1e-9)
		assert.InDelta(t, 3.0, report.Days[2].Hours, 1e-9)
		assert.Equal(t, 2, report.HottestDay)
	})
}
