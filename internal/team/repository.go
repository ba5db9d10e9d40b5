package team

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, userID int64, req CreateTeamRequest) (*Team, error) {
	query := `
		INSERT INTO teams (user_id, name, category, sport, logo, banner)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, name, category, sport, logo, banner, created_at
	`

	var t Team
	err := r.db.GetContext(ctx, &t, query, userID, req.Name, req.Category, req.Sport, req.Logo, req.Banner)
	if err != nil {
		return nil, err
	}

	t.Players = []Player{}
	return &t, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Team, error) {
	query := `
		SELECT id, user_id, name, category, sport, logo, banner, created_at
		FROM teams
		WHERE id = $1
	`

	var t Team
	err := r.db.GetContext(ctx, &t, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadPlayers(ctx, &t); err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int64) ([]Team, error) {
	query := `
		SELECT id, user_id, name, category, sport, logo, banner, created_at
		FROM teams
		WHERE user_id = $1
		ORDER BY name
	`

	teams := []Team{}
	err := r.db.SelectContext(ctx, &teams, query, userID)
	if err != nil {
		return nil, err
	}

	for i := range teams {
		if err := r.loadPlayers(ctx, &teams[i]); err != nil {
			return nil, err
		}
	}

	return teams, nil
}

func (r *repository) loadPlayers(ctx context.Context, t *Team) error {
	query := `
		SELECT id, team_id, name, position, number, age, height, image
		FROM players
		WHERE team_id = $1
		ORDER BY number, name
	`

	t.Players = []Player{}
	return r.db.SelectContext(ctx, &t.Players, query, t.ID)
}

func (r *repository) AddPlayer(ctx context.Context, teamID int64, req AddPlayerRequest) (*Player, error) {
	query := `
		INSERT INTO players (team_id, name, position, number, age, height, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, team_id, name, position, number, age, height, image
	`

	var p Player
	err := r.db.GetContext(ctx, &p, query, teamID, req.Name, req.Position, req.Number, req.Age, req.Height, req.Image)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) GetPlayer(ctx context.Context, playerID int64) (*Player, error) {
	query := `
		SELECT id, team_id, name, position, number, age, height, image
		FROM players
		WHERE id = $1
	`

	var p Player
	err := r.db.GetContext(ctx, &p, query, playerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) DeletePlayer(ctx context.Context, playerID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, playerID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPlayerNotFound
	}

	return nil
}

// SnapshotByNames resolves a user's teams by name into the denormalized
// form embedded in bookings. Names without a matching team are skipped.
func (r *repository) SnapshotByNames(ctx context.Context, userID int64, names []string) ([]TeamRef, error) {
	if len(names) == 0 {
		return []TeamRef{}, nil
	}

	query := `
		SELECT id, user_id, name, category, sport, logo, banner, created_at
		FROM teams
		WHERE user_id = $1 AND name = ANY($2)
		ORDER BY name
	`

	teams := []Team{}
	err := r.db.SelectContext(ctx, &teams, query, userID, pq.Array(names))
	if err != nil {
		return nil, err
	}

	refs := make([]TeamRef, 0, len(teams))
	for i := range teams {
		if err := r.loadPlayers(ctx, &teams[i]); err != nil {
			return nil, err
		}

		players := make([]PlayerRef, 0, len(teams[i].Players))
		for _, p := range teams[i].Players {
			players = append(players, PlayerRef{Name: p.Name, Position: p.Position, Number: p.Number})
		}

		refs = append(refs, TeamRef{
			Name:    teams[i].Name,
			Logo:    teams[i].Logo,
			Players: players,
		})
	}

	return refs, nil
}
