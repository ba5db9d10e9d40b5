package venue

import (
	"context"
	"fmt"

	"github.com/GianSanchez-dev/hooping-week/internal/schedule"
)

type Service interface {
	Create(ctx context.Context, req CreateVenueRequest) (*Venue, error)
	Get(ctx context.Context, id int64) (*Venue, error)
	List(ctx context.Context) ([]Venue, error)
	Update(ctx context.Context, id int64, req UpdateVenueRequest) (*Venue, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// validateSettings rejects rules with malformed clock times or weekday
// values. Overlapping rules are allowed: a doubly blocked window is
// still just blocked.
func validateSettings(s *Settings) error {
	if s == nil {
		return nil
	}
	for i, rule := range s.RecurringBlocks {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("recurring block %d (%q): %w", i, rule.Title, err)
		}
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateVenueRequest) (*Venue, error) {
	if err := validateSettings(req.Settings); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}

	settings := Settings{RecurringBlocks: []schedule.RecurringRule{}}
	if req.Settings != nil {
		settings = *req.Settings
	}

	return s.repo.Create(ctx, req.Name, req.Location, req.Image, status, settings)
}

func (s *service) Get(ctx context.Context, id int64) (*Venue, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Venue, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update. A settings payload replaces the whole
// recurring block list, so removing one rule is a PUT with the filtered
// list.
func (s *service) Update(ctx context.Context, id int64, req UpdateVenueRequest) (*Venue, error) {
	if err := validateSettings(req.Settings); err != nil {
		return nil, err
	}

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.Location != nil {
		v.Location = *req.Location
	}
	if req.Image != nil {
		v.Image = *req.Image
	}
	if req.Status != nil {
		v.Status = *req.Status
	}
	if req.Settings != nil {
		v.Settings = *req.Settings
	}

	return s.repo.Update(ctx, v)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
