package models

import "time"

// Game is the persisted record of a table.
type Game struct {
	Id         string
	Name       string
	Status     string
	Winner     string
	Turns      int
	CreatedAt  time.Time
	FinishedAt time.Time
}

type GameCreateDto struct {
	Name    string   `json:"name"`
	Players []string `json:"players"`
	Seed    int64    `json:"seed"`
}

type VerifyGameDto struct {
	Code string `query:"code"`
}

const (
	GameStatusInProgress = "in progress"
	GameStatusFinished   = "finished"
)
