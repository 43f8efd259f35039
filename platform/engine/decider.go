package engine

import (
	"github.com/DedS3t/monopoly-engine/platform/board"
	"github.com/DedS3t/monopoly-engine/platform/ledger"
	"github.com/DedS3t/monopoly-engine/platform/trade"
)

// VacationExit is the way a player tries to leave vacation.
type VacationExit string

const (
	VacationPay         VacationExit = "pay"
	VacationRollDoubles VacationExit = "roll-doubles"
	VacationUseCard     VacationExit = "use-card"
)

// VacationRequest asks how a player on vacation spends the turn. Err is set
// when the previous answer was rejected.
type VacationRequest struct {
	Player  *ledger.Player
	Fee     int
	HasCard bool
	Err     error
}

// FundsOption is one way to raise money for an obligation.
type FundsOption string

const (
	FundsEliminate      FundsOption = "eliminate"
	FundsExit           FundsOption = "exit"
	FundsTrade          FundsOption = "trade"
	FundsPawn           FundsOption = "pawn"
	FundsSellRestaurant FundsOption = "sell-restaurant"
)

// FundsRequest asks a player short of money what to do next.
type FundsRequest struct {
	Player    *ledger.Player
	Owed      int
	Mandatory bool
	Options   []FundsOption
	Err       error
}

// FundsChoice answers a FundsRequest. Position names the property for pawn
// and sell-restaurant.
type FundsChoice struct {
	Option   FundsOption
	Position int
}

// Decider supplies every mid-turn decision. Calls block until the decision
// is made.
type Decider interface {
	ConfirmPurchase(p *ledger.Player, prop board.Property) bool
	ChooseVacationExit(req VacationRequest) VacationExit
	RaiseFunds(req FundsRequest) FundsChoice
	// NegotiateTrade drives n up to StageResponse, or cancels it.
	NegotiateTrade(n *trade.Negotiation)
	RespondToTrade(counterpart *ledger.Player, offer trade.Offer) bool
}

// PassiveDecider never buys, tries doubles on vacation, never trades and
// gives up when short of money. It stands in for computer players.
type PassiveDecider struct{}

func (PassiveDecider) ConfirmPurchase(*ledger.Player, board.Property) bool { return false }

func (PassiveDecider) ChooseVacationExit(VacationRequest) VacationExit { return VacationRollDoubles }

func (PassiveDecider) RaiseFunds(req FundsRequest) FundsChoice {
	if req.Mandatory {
		return FundsChoice{Option: FundsEliminate}
	}
	return FundsChoice{Option: FundsExit}
}

func (PassiveDecider) NegotiateTrade(n *trade.Negotiation) { n.Cancel() }

func (PassiveDecider) RespondToTrade(*ledger.Player, trade.Offer) bool { return false }
