package venue

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrVenueNotFound = errors.New("venue not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, location, image, status string, settings Settings) (*Venue, error) {
	query := `
		INSERT INTO venues (name, location, image, status, settings)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, location, image, status, settings, created_at
	`

	var v Venue
	err := r.db.GetContext(ctx, &v, query, name, location, image, status, settings)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Venue, error) {
	query := `
		SELECT id, name, location, image, status, settings, created_at
		FROM venues
		WHERE id = $1
	`

	var v Venue
	err := r.db.GetContext(ctx, &v, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, err
	}

	return &v, nil
}

func (r *repository) List(ctx context.Context) ([]Venue, error) {
	query := `
		SELECT id, name, location, image, status, settings, created_at
		FROM venues
		ORDER BY name
	`

	venues := []Venue{}
	err := r.db.SelectContext(ctx, &venues, query)
	if err != nil {
		return nil, err
	}

	return venues, nil
}

func (r *repository) Update(ctx context.Context, v *Venue) (*Venue, error) {
	query := `
		UPDATE venues
		SET name = $1, location = $2, image = $3, status = $4, settings = $5
		WHERE id = $6
		RETURNING id, name, location, image, status, settings, created_at
	`

	var updated Venue
	err := r.db.GetContext(ctx, &updated, query, v.Name, v.Location, v.Image, v.Status, v.Settings, v.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVenueNotFound
	}

	return nil
}
