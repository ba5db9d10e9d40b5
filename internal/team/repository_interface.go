package team

import "context"

type Repository interface {
	Create(ctx context.Context, userID int64, req CreateTeamRequest) (*Team, error)
	GetByID(ctx context.Context, id int64) (*Team, error)
	ListByUser(ctx context.Context, userID int64) ([]Team, error)
	AddPlayer(ctx context.Context, teamID int64, req AddPlayerRequest) (*Player, error)
	DeletePlayer(ctx context.Context, playerID int64) error
	GetPlayer(ctx context.Context, playerID int64) (*Player, error)
	SnapshotByNames(ctx context.Context, userID int64, names []string) ([]TeamRef, error)
}
