package engine

import (
	"github.com/DedS3t/monopoly-engine/pkg/gameerr"
	"github.com/DedS3t/monopoly-engine/platform/board"
	"github.com/DedS3t/monopoly-engine/platform/ledger"
	"github.com/DedS3t/monopoly-engine/platform/trade"
)

// charge makes debtor pay amount to creditor, or to the bank when creditor
// is nil. A debtor who cannot raise the money is eliminated and everything
// it has left goes to the creditor. It reports whether the debt was paid.
func (e *TurnEngine) charge(debtor *ledger.Player, amount int, creditor *ledger.Player, reason string) bool {
	if amount <= 0 {
		return true
	}
	if !e.raiseFunds(debtor, amount, true) {
		e.eliminate(debtor, creditor)
		return false
	}
	ev := Event{Kind: EventPaid, Player: debtor.Number(), Amount: amount, Message: reason}
	if creditor != nil {
		gameerr.Must(e.ledger.Transfer(debtor, creditor, amount))
		ev.Other = creditor.Number()
	} else {
		gameerr.Must(debtor.Debit(amount))
	}
	e.emit(ev)
	return true
}

// raiseFunds runs the money-raising sub-flow until p holds owed or gives
// up. Giving up is elimination for mandatory obligations and a plain exit
// otherwise; either way it returns false.
func (e *TurnEngine) raiseFunds(p *ledger.Player, owed int, mandatory bool) bool {
	var lastErr error
	for !p.CanAfford(owed) {
		options := e.fundsOptions(p, mandatory)
		if len(options) == 1 {
			// nothing left to try besides giving up
			return false
		}
		choice := e.decider.RaiseFunds(FundsRequest{
			Player:    p,
			Owed:      owed,
			Mandatory: mandatory,
			Options:   options,
			Err:       lastErr,
		})
		lastErr = nil
		if !hasOption(options, choice.Option) {
			lastErr = gameerr.Newf(gameerr.CodeInvalidChoice, "option %q is not available", choice.Option)
			continue
		}

		switch choice.Option {
		case FundsEliminate, FundsExit:
			return false
		case FundsPawn:
			lastErr = e.pawn(p, choice.Position)
		case FundsSellRestaurant:
			lastErr = e.sellRestaurant(p, choice.Position)
		case FundsTrade:
			lastErr = e.tradeFor(p, true)
		}
	}
	return true
}

func (e *TurnEngine) fundsOptions(p *ledger.Player, mandatory bool) []FundsOption {
	options := []FundsOption{FundsExit}
	if mandatory {
		options = []FundsOption{FundsEliminate}
	}
	if trade.HasTradeable(e.registry, p) && len(e.ledger.OthersExcluding(p)) > 0 {
		options = append(options, FundsTrade)
	}
	if len(e.registry.Pawnable(p.Number())) > 0 {
		options = append(options, FundsPawn)
	}
	if len(e.registry.Developed(p.Number())) > 0 {
		options = append(options, FundsSellRestaurant)
	}
	return options
}

func hasOption(options []FundsOption, o FundsOption) bool {
	for _, opt := range options {
		if opt == o {
			return true
		}
	}
	return false
}

// tradeFor lets the adapter build a trade for p and asks the counterpart.
// A cancelled negotiation is not an error.
func (e *TurnEngine) tradeFor(p *ledger.Player, mandatoryMoney bool) error {
	n := trade.New(e.registry, e.ledger, p, mandatoryMoney)
	e.decider.NegotiateTrade(n)
	if n.Stage() != trade.StageResponse {
		n.Cancel()
		return nil
	}
	accepted := e.decider.RespondToTrade(n.Counterpart(), n.Offer())
	_, err := e.settleTrade(n, accepted)
	return err
}

// settleTrade applies the counterpart's answer.
func (e *TurnEngine) settleTrade(n *trade.Negotiation, accepted bool) (trade.Result, error) {
	if !accepted {
		return trade.Result{}, n.Decline()
	}
	res, err := n.Accept()
	if err != nil {
		return res, err
	}
	for _, r := range res.Refunds {
		e.emit(Event{Kind: EventRefunded, Player: r.Owner, Amount: r.Amount})
	}
	e.emit(Event{
		Kind:   EventTraded,
		Player: res.Offer.Initiator,
		Other:  res.Offer.Counterpart,
		Amount: res.Offer.Wanted.Money - res.Offer.Offered.Money,
	})
	return res, nil
}

func (e *TurnEngine) pawn(p *ledger.Player, pos int) error {
	prop, err := e.registry.PropertyAt(pos)
	if err != nil {
		return err
	}
	gain, err := e.registry.Pawn(prop, p.Number())
	if err != nil {
		return err
	}
	p.Credit(gain)
	e.emit(Event{Kind: EventPawned, Player: p.Number(), Amount: gain, Position: pos, Message: prop.Name()})
	return nil
}

func (e *TurnEngine) unpawn(p *ledger.Player, pos int) error {
	prop, err := e.registry.PropertyAt(pos)
	if err != nil {
		return err
	}
	if prop.Owner() == p.Number() && !p.CanAfford(prop.UnpawnPrice()) {
		return gameerr.Newf(gameerr.CodeInsufficientFunds, "%s needs %d to redeem %s", p.Name(), prop.UnpawnPrice(), prop.Name())
	}
	cost, err := e.registry.Unpawn(prop, p.Number())
	if err != nil {
		return err
	}
	gameerr.Must(p.Debit(cost))
	e.emit(Event{Kind: EventUnpawned, Player: p.Number(), Amount: cost, Position: pos, Message: prop.Name()})
	return nil
}

func (e *TurnEngine) addRestaurant(p *ledger.Player, pos int) error {
	s, err := e.registry.StreetAt(pos)
	if err != nil {
		return err
	}
	if err := e.registry.CanAddRestaurant(s, p.Number()); err != nil {
		return err
	}
	if price := s.Neighborhood().RestaurantPrice; !p.CanAfford(price) {
		return gameerr.Newf(gameerr.CodeInsufficientFunds, "%s needs %d for a restaurant", p.Name(), price)
	}
	cost, err := e.registry.AddRestaurant(s, p.Number())
	if err != nil {
		return err
	}
	gameerr.Must(p.Debit(cost))
	e.emit(Event{Kind: EventDeveloped, Player: p.Number(), Amount: cost, Position: pos, Message: s.Name()})
	return nil
}

func (e *TurnEngine) sellRestaurant(p *ledger.Player, pos int) error {
	s, err := e.registry.StreetAt(pos)
	if err != nil {
		return err
	}
	gain, err := e.registry.RemoveRestaurant(s, p.Number())
	if err != nil {
		return err
	}
	p.Credit(gain)
	e.emit(Event{Kind: EventRestaurantSold, Player: p.Number(), Amount: gain, Position: pos, Message: s.Name()})
	return nil
}

func (e *TurnEngine) applyRefund(r board.Refund) {
	if r.Amount == 0 {
		return
	}
	owner, err := e.ledger.ByNumber(r.Owner)
	gameerr.Must(err)
	owner.Credit(r.Amount)
	e.emit(Event{Kind: EventRefunded, Player: r.Owner, Amount: r.Amount})
}

// eliminate takes p out of the game. Held vacation cards go back into the
// deck; money and properties go to creditor when there is one.
func (e *TurnEngine) eliminate(p *ledger.Player, creditor *ledger.Player) {
	ev := Event{Kind: EventEliminated, Player: p.Number(), Amount: p.Money()}
	var cards int
	if creditor != nil && creditor.InGame() {
		ev.Other = creditor.Number()
		cards = e.ledger.EliminateInto(p, creditor)
	} else {
		cards = e.ledger.Eliminate(p)
	}
	for i := 0; i < cards; i++ {
		gameerr.Must(e.deck.ReinsertGetOffVacationCard())
	}
	e.emit(ev)
}
