package deck

// Effect is what a drawn card does. The set of effects is closed.
type Effect interface {
	effect()
}

// MoneyGain credits the drawing player.
type MoneyGain struct{ Amount int }

// MoneyLoss debits the drawing player.
type MoneyLoss struct{ Amount int }

// PlayerPaysOthers makes the drawing player pay every other player.
type PlayerPaysOthers struct{ Amount int }

// OthersPayPlayer makes every other player pay the drawing player.
type OthersPayPlayer struct{ Amount int }

// RelativeMove moves the drawing player by a signed number of spaces.
type RelativeMove struct{ Spaces int }

// AbsoluteMove sends the drawing player to a fixed position.
type AbsoluteMove struct {
	Target   int
	Property string
}

// MaintenanceFee charges per restaurant the drawing player owns.
type MaintenanceFee struct{ PerRestaurant int }

// GetOffVacationFree is kept by the player until used.
type GetOffVacationFree struct{}

// GoOnVacation sends the drawing player on vacation.
type GoOnVacation struct{}

func (MoneyGain) effect()          {}
func (MoneyLoss) effect()          {}
func (PlayerPaysOthers) effect()   {}
func (OthersPayPlayer) effect()    {}
func (RelativeMove) effect()       {}
func (AbsoluteMove) effect()       {}
func (MaintenanceFee) effect()     {}
func (GetOffVacationFree) effect() {}
func (GoOnVacation) effect()       {}

// Card is one action card.
type Card struct {
	Message string
	Effect  Effect
}

// IsGetOffVacation reports whether the card is a get-off-vacation-free card.
func (c Card) IsGetOffVacation() bool {
	_, ok := c.Effect.(GetOffVacationFree)
	return ok
}

// TypeName returns the wire name of the card's effect.
func (c Card) TypeName() string {
	switch c.Effect.(type) {
	case MoneyGain:
		return "money-gain"
	case MoneyLoss:
		return "money-loss"
	case PlayerPaysOthers:
		return "player-pays-others"
	case OthersPayPlayer:
		return "others-pay-player"
	case RelativeMove:
		return "relative-move"
	case AbsoluteMove:
		return "absolute-move"
	case MaintenanceFee:
		return "property-maintenance-fee"
	case GetOffVacationFree:
		return "get-off-vacation-free"
	case GoOnVacation:
		return "go-on-vacation"
	default:
		return "unknown"
	}
}
