package venue

import "context"

type Repository interface {
	Create(ctx context.Context, name, location, image, status string, settings Settings) (*Venue, error)
	GetByID(ctx context.Context, id int64) (*Venue, error)
	List(ctx context.Context) ([]Venue, error)
	Update(ctx context.Context, v *Venue) (*Venue, error)
	Delete(ctx context.Context, id int64) error
}
