package entity

import "time"

type Plan struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Amount int64  `json:"amount"`
	Months int    `json:"months"`
}

type Profile struct {
	Login     string    `json:"login"`
	Plan      string    `json:"plan"`
	PlanUntil time.Time `json:"plan_until"`
	TeamID    string    `json:"team_id,omitempty"`
}

type Summary struct {
	Plan      string    `json:"plan"`
	RenewsAt  time.Time `json:"renews_at"`
	TeamSeats int       `json:"team_seats"`
}
