package engine

import (
	"github.com/DedS3t/monopoly-engine/pkg/gameerr"
	"github.com/DedS3t/monopoly-engine/platform/board"
	"github.com/DedS3t/monopoly-engine/platform/deck"
	"github.com/DedS3t/monopoly-engine/platform/ledger"
)

// resolve evaluates the space under p. Cards that move the player queue
// another evaluation; the chain is bounded by MaxResolutionHops.
func (e *TurnEngine) resolve(p *ledger.Player) {
	e.state = StateResolving
	for hop := 0; hop < e.rules.MaxResolutionHops; hop++ {
		if !p.InGame() || p.OnVacation() {
			return
		}
		space, err := e.registry.SpaceAt(p.Position())
		gameerr.Must(err)

		again := false
		switch space.Kind {
		case board.SpaceGoOnVacation:
			e.sendOnVacation(p)
		case board.SpaceDrawActionCard:
			again = e.drawCard(p)
		case board.SpaceProperty:
			e.landOnProperty(p, space.Property)
		}
		if !again {
			return
		}
	}
}

func (e *TurnEngine) landOnProperty(p *ledger.Player, prop board.Property) {
	owner := prop.Owner()
	switch {
	case owner == board.NoOwner:
		e.offerPurchase(p, prop)
	case owner == p.Number(), prop.Pawned():
	default:
		creditor, err := e.ledger.ByNumber(owner)
		gameerr.Must(err)
		fee := e.fee(p, prop)
		e.charge(p, fee, creditor, prop.Name())
	}
}

// fee computes the landing fee; super-stores take a fresh roll.
func (e *TurnEngine) fee(p *ledger.Player, prop board.Property) int {
	if store, ok := prop.(*board.SuperStore); ok {
		d1, d2 := e.roll(p)
		_, amount := e.registry.SuperStoreFee(store, d1+d2)
		return amount
	}
	return e.registry.CurrentFee(prop, 0)
}

func (e *TurnEngine) offerPurchase(p *ledger.Player, prop board.Property) {
	if !e.decider.ConfirmPurchase(p, prop) {
		return
	}
	price := prop.PurchasePrice()
	if !e.raiseFunds(p, price, false) {
		return
	}
	// raising funds may have involved a trade, re-check the property
	if prop.Owner() != board.NoOwner {
		return
	}
	gameerr.Must(p.Debit(price))
	e.applyRefund(e.registry.SetOwner(prop, p.Number()))
	e.emit(Event{Kind: EventPurchased, Player: p.Number(), Amount: price, Position: prop.Position(), Message: prop.Name()})
}

// drawCard applies the top card and reports whether the player moved.
func (e *TurnEngine) drawCard(p *ledger.Player) bool {
	card := e.deck.Top()
	e.emit(Event{Kind: EventCardDrawn, Player: p.Number(), Position: p.Position(), Message: card.Message})

	if card.IsGetOffVacation() {
		_, err := e.deck.WithdrawGetOffVacationCardAtTop()
		gameerr.Must(err)
		p.AddVacationCard()
		return false
	}
	e.deck.Advance()

	switch eff := card.Effect.(type) {
	case deck.MoneyGain:
		p.Credit(eff.Amount)
		e.emit(Event{Kind: EventCredited, Player: p.Number(), Amount: eff.Amount})
	case deck.MoneyLoss:
		e.charge(p, eff.Amount, nil, card.Message)
	case deck.OthersPayPlayer:
		for _, other := range e.ledger.OthersExcluding(p) {
			e.charge(other, eff.Amount, p, card.Message)
		}
	case deck.PlayerPaysOthers:
		others := e.ledger.OthersExcluding(p)
		total := eff.Amount * len(others)
		if !e.raiseFunds(p, total, true) {
			e.eliminate(p, nil)
			return false
		}
		for _, other := range others {
			gameerr.Must(e.ledger.Transfer(p, other, eff.Amount))
			e.emit(Event{Kind: EventPaid, Player: p.Number(), Other: other.Number(), Amount: eff.Amount, Message: card.Message})
		}
	case deck.RelativeMove:
		e.advance(p, eff.Spaces)
		return true
	case deck.AbsoluteMove:
		e.jump(p, eff.Target)
		return true
	case deck.MaintenanceFee:
		if n := e.registry.RestaurantsOwnedBy(p.Number()); n > 0 {
			e.charge(p, n*eff.PerRestaurant, nil, card.Message)
		}
	case deck.GoOnVacation:
		e.sendOnVacation(p)
	default:
		panic(gameerr.Newf(gameerr.CodeInvalidState, "unhandled card effect %T", card.Effect))
	}
	return false
}
