package models

// PlayerDto is the informational view of a player.
type PlayerDto struct {
	Number        int    `json:"number"`
	Username      string `json:"username"`
	Balance       int    `json:"balance"`
	Pos           int    `json:"pos"`
	InGame        bool   `json:"in_game"`
	Vacation      bool   `json:"vacation"`
	VacationTurns int    `json:"vacation_turns"`
	Cards         int    `json:"cards"`
	Properties    []int  `json:"properties"`
}

// PropertyDto is the informational view of a property.
type PropertyDto struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Posistion   int    `json:"posistion"`
	Owner       int    `json:"owner"`
	Pawned      bool   `json:"pawned"`
	Restaurants int    `json:"restaurants"`
	Fee         int    `json:"fee"`
	Price       int    `json:"price"`
}

// Standing is one row of the net worth ranking.
type Standing struct {
	Number   int    `json:"number"`
	Username string `json:"username"`
	NetWorth int    `json:"net_worth"`
	InGame   bool   `json:"in_game"`
}

// GameView is everything an adapter needs to render the table.
type GameView struct {
	Id         string        `json:"id"`
	State      string        `json:"state"`
	Turn       int           `json:"turn"`
	Current    int           `json:"current"`
	Players    []PlayerDto   `json:"players"`
	Properties []PropertyDto `json:"properties"`
	Actions    []string      `json:"actions"`
}
