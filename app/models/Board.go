package models

// Space is one slot of the board layout as stored in the board definition.
type Space struct {
	Position int    `json:"position"`
	Type     string `json:"type"` // "start", "draw", "break", "vacation", "go-vacation", "street", "store", "golf"
	Name     string `json:"name"`
	Group    int    `json:"group"` // neighborhood ordinal for streets
	Price    int    `json:"price"`
}

// Neighborhood holds the shared economy of a group of three streets.
type Neighborhood struct {
	Ordinal         int    `json:"ordinal"`
	Name            string `json:"name"`
	StartingFee     int    `json:"starting_fee"`
	Fees            []int  `json:"fees"` // indexed by restaurant count, unified ownership
	RestaurantPrice int    `json:"restaurant_price"`
	RestaurantGain  int    `json:"restaurant_gain"`
}

// Board is the full board definition.
type Board struct {
	Spaces           []Space        `json:"spaces"`
	Neighborhoods    []Neighborhood `json:"neighborhoods"`
	StoreMultipliers []int          `json:"store_multipliers"` // stores held -> dice multiplier
	GolfFees         []int          `json:"golf_fees"`         // clubs held -> fee
}

// Card is an action card definition.
type Card struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Value    int    `json:"value"`
	Property string `json:"property,omitempty"` // target of absolute moves
}
