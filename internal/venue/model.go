package venue

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/GianSanchez-dev/hooping-week/internal/schedule"
)

const (
	StatusActive      = "active"
	StatusMaintenance = "maintenance"
)

type Venue struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Location  string    `db:"location" json:"location"`
	Image     string    `db:"image" json:"image"`
	Status    string    `db:"status" json:"status"`
	Settings  Settings  `db:"settings" json:"settings"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Settings is stored as a single JSONB column.
type Settings struct {
	RecurringBlocks []schedule.RecurringRule `json:"recurringBlocks"`
}

func (s Settings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Settings) Scan(src interface{}) error {
	if src == nil {
		*s = Settings{}
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, s)
	case string:
		return json.Unmarshal([]byte(data), s)
	default:
		return errors.New("venue: unsupported settings column type")
	}
}

type CreateVenueRequest struct {
	Name     string    `json:"name" binding:"required,min=2,max=120"`
	Location string    `json:"location" binding:"required"`
	Image    string    `json:"image" binding:"omitempty,url"`
	Status   string    `json:"status" binding:"omitempty,oneof=active maintenance"`
	Settings *Settings `json:"settings"`
}

type UpdateVenueRequest struct {
	Name     *string   `json:"name" binding:"omitempty,min=2,max=120"`
	Location *string   `json:"location"`
	Image    *string   `json:"image" binding:"omitempty,url"`
	Status   *string   `json:"status" binding:"omitempty,oneof=active maintenance"`
	Settings *Settings `json:"settings"`
}
