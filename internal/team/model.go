package team

import "time"

type Team struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	Name      string    `db:"name" json:"name"`
	Category  string    `db:"category" json:"category"`
	Sport     string    `db:"sport" json:"sport"`
	Logo      string    `db:"logo" json:"logo"`
	Banner    string    `db:"banner" json:"banner"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	Players []Player `json:"players"`
}

type Player struct {
	ID       int64  `db:"id" json:"id"`
	TeamID   int64  `db:"team_id" json:"teamId"`
	Name     string `db:"name" json:"name"`
	Position string `db:"position" json:"position"`
	Number   int    `db:"number" json:"number"`
	Age      int    `db:"age" json:"age"`
	Height   string `db:"height" json:"height"`
	Image    string `db:"image" json:"image"`
}

// TeamRef is the snapshot embedded in a booking's extendedProps.teams.
type TeamRef struct {
	Name    string      `json:"name"`
	Logo    string      `json:"logo"`
	Players []PlayerRef `json:"players"`
}

type PlayerRef struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Number   int    `json:"number"`
}

type CreateTeamRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=120"`
	Category string `json:"category"`
	Sport    string `json:"sport" binding:"required"`
	Logo     string `json:"logo" binding:"omitempty,url"`
	Banner   string `json:"banner" binding:"omitempty,url"`
}

type AddPlayerRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=120"`
	Position string `json:"position"`
	Number   int    `json:"number" binding:"omitempty,min=0,max=99"`
	Age      int    `json:"age" binding:"omitempty,min=5,max=99"`
	Height   string `json:"height"`
	Image    string `json:"image" binding:"omitempty,url"`
}
