package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GianSanchez-dev/hooping-week/internal/schedule"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Booking) (*Booking, error) {
	query := `
		INSERT INTO bookings (venue_id, user_id, title, start_time, end_time, status, sport_type, description, banner, teams)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, venue_id, user_id, title, start_time, end_time, status, sport_type, description, banner, teams, created_at
	`

	teams := b.Teams
	if teams == nil {
		teams = json.RawMessage("[]")
	}

	var created Booking
	err := r.db.GetContext(ctx, &created, query,
		b.VenueID, b.UserID, b.Title, b.StartTime, b.EndTime, b.Status,
		b.SportType, b.Description, b.Banner, teams)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query := `
		SELECT id, venue_id, COALESCE(user_id, 0) AS user_id, title, start_time, end_time, status, sport_type, description, banner, teams, created_at
		FROM bookings
		WHERE id = $1
	`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// calendarRow carries the join columns List shapes into CalendarEvents.
type calendarRow struct {
	ID          int64           `db:"id"`
	Title       string          `db:"title"`
	StartTime   time.Time       `db:"start_time"`
	EndTime     time.Time       `db:"end_time"`
	Status      string          `db:"status"`
	SportType   string          `db:"sport_type"`
	Description string          `db:"description"`
	VenueID     int64           `db:"venue_id"`
	VenueName   string          `db:"venue_name"`
	Teams       json.RawMessage `db:"teams"`
	UserName    string          `db:"user_name"`
	UserAvatar  string          `db:"user_avatar"`
}

func (r *repository) List(ctx context.Context, f ListFilters) ([]CalendarEvent, error) {
	query := `
		SELECT b.id, b.title, b.start_time, b.end_time, b.status, b.sport_type, b.description,
		       b.venue_id, v.name AS venue_name, b.teams,
		       COALESCE(u.full_name, 'Administración') AS user_name,
		       COALESCE(u.avatar, '') AS user_avatar
		FROM bookings b
		JOIN venues v ON v.id = b.venue_id
		LEFT JOIN users u ON u.id = b.user_id
	`

	conditions := []string{}
	args := []interface{}{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if f.VenueID != 0 {
		addCondition("b.venue_id = $%d", f.VenueID)
	}
	if f.UserID != 0 {
		addCondition("b.user_id = $%d", f.UserID)
	}
	if f.Status != "" {
		addCondition("b.status = $%d", f.Status)
	}
	if !f.Start.IsZero() {
		addCondition("b.end_time > $%d", f.Start)
	}
	if !f.End.IsZero() {
		addCondition("b.start_time < $%d", f.End)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY b.start_time, b.id"

	rows := []calendarRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	events := make([]CalendarEvent, 0, len(rows))
	for _, row := range rows {
		teams := row.Teams
		if teams == nil {
			teams = json.RawMessage("[]")
		}
		events = append(events, CalendarEvent{
			ID:    row.ID,
			Title: row.Title,
			Start: row.StartTime,
			End:   row.EndTime,
			ExtendedProps: ExtendedProps{
				Status:      row.Status,
				SportType:   row.SportType,
				Description: row.Description,
				VenueID:     row.VenueID,
				VenueName:   row.VenueName,
				Teams:       teams,
				BookedBy:    BookedBy{Name: row.UserName, Avatar: row.UserAvatar},
			},
		})
	}

	return events, nil
}

func (r *repository) UpdateStatusFrom(ctx context.Context, id int64, from, to string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $1 WHERE id = $2 AND status = $3`, to, id, from)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *repository) CommittedRanges(ctx context.Context, venueID int64, from, to time.Time) ([]schedule.TimeRange, error) {
	query := `
		SELECT start_time, end_time
		FROM bookings
		WHERE venue_id = $1
		  AND status IN ('approved', 'blocked')
		  AND start_time < $3 AND end_time > $2
		ORDER BY start_time, id
	`

	rows := []struct {
		StartTime time.Time `db:"start_time"`
		EndTime   time.Time `db:"end_time"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, venueID, from, to); err != nil {
		return nil, err
	}

	ranges := make([]schedule.TimeRange, 0, len(rows))
	for _, row := range rows {
		ranges = append(ranges, schedule.TimeRange{Start: row.StartTime, End: row.EndTime})
	}

	return ranges, nil
}

// WithVenueLock serializes conflict-sensitive writes per venue. The
// advisory lock is transaction scoped, so commit or rollback releases it
// and a concurrent caller for the same venue then sees this
// transaction's outcome.
func (r *repository) WithVenueLock(ctx context.Context, venueID int64, fn func(tx TxStore) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, venueID); err != nil {
		return err
	}

	if err := fn(&txStore{ctx: ctx, tx: tx}); err != nil {
		return err
	}

	return tx.Commit()
}

type txStore struct {
	ctx context.Context
	tx  *sqlx.Tx
}

func (s *txStore) CommittedForVenue(venueID, excludeBookingID int64) ([]schedule.CommittedInterval, error) {
	query := `
		SELECT id, title, start_time, end_time
		FROM bookings
		WHERE venue_id = $1
		  AND status IN ('approved', 'blocked')
		  AND id <> $2
		ORDER BY start_time, id
	`

	rows := []struct {
		ID        int64     `db:"id"`
		Title     string    `db:"title"`
		StartTime time.Time `db:"start_time"`
		EndTime   time.Time `db:"end_time"`
	}{}
	if err := s.tx.SelectContext(s.ctx, &rows, query, venueID, excludeBookingID); err != nil {
		return nil, err
	}

	committed := make([]schedule.CommittedInterval, 0, len(rows))
	for _, row := range rows {
		committed = append(committed, schedule.CommittedInterval{
			BookingID: row.ID,
			Title:     row.Title,
			Range:     schedule.TimeRange{Start: row.StartTime, End: row.EndTime},
		})
	}

	return committed, nil
}

func (s *txStore) UpdateStatusFrom(id int64, from, to string) error {
	result, err := s.tx.ExecContext(s.ctx,
		`UPDATE bookings SET status = $1 WHERE id = $2 AND status = $3`, to, id, from)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}

	return nil
}

func (s *txStore) InsertBlock(venueID int64, rng schedule.TimeRange, title string) (*Booking, error) {
	query := `
		INSERT INTO bookings (venue_id, user_id, title, start_time, end_time, status, sport_type, description, banner, teams)
		VALUES ($1, NULL, $2, $3, $4, 'blocked', 'block', '', '', '[]')
		RETURNING id, venue_id, COALESCE(user_id, 0) AS user_id, title, start_time, end_time, status, sport_type, description, banner, teams, created_at
	`

	var b Booking
	err := s.tx.GetContext(s.ctx, &b, query, venueID, title, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	return &b, nil
}
