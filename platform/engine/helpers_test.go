package engine

import (
	"testing"

	"github.com/DedS3t/monopoly-engine/platform/board"
	"github.com/DedS3t/monopoly-engine/platform/deck"
	"github.com/DedS3t/monopoly-engine/platform/ledger"
	"github.com/DedS3t/monopoly-engine/platform/trade"
)

type scriptedDice struct {
	t     *testing.T
	rolls [][2]int
}

func dice(t *testing.T, rolls ...[2]int) *scriptedDice {
	return &scriptedDice{t: t, rolls: rolls}
}

func (d *scriptedDice) Roll() (int, int) {
	if len(d.rolls) == 0 {
		d.t.Fatal("dice rolled more often than scripted")
	}
	r := d.rolls[0]
	d.rolls = d.rolls[1:]
	return r[0], r[1]
}

// scriptedDecider answers from queues and falls back to PassiveDecider.
type scriptedDecider struct {
	PassiveDecider
	buy       bool
	exits     []VacationExit
	funds     []FundsChoice
	negotiate func(n *trade.Negotiation)
	accept    bool

	vacationRequests []VacationRequest
	fundsRequests    []FundsRequest
}

func (d *scriptedDecider) ConfirmPurchase(*ledger.Player, board.Property) bool { return d.buy }

func (d *scriptedDecider) ChooseVacationExit(req VacationRequest) VacationExit {
	d.vacationRequests = append(d.vacationRequests, req)
	if len(d.exits) == 0 {
		return d.PassiveDecider.ChooseVacationExit(req)
	}
	exit := d.exits[0]
	d.exits = d.exits[1:]
	return exit
}

func (d *scriptedDecider) RaiseFunds(req FundsRequest) FundsChoice {
	d.fundsRequests = append(d.fundsRequests, req)
	if len(d.funds) == 0 {
		return d.PassiveDecider.RaiseFunds(req)
	}
	c := d.funds[0]
	d.funds = d.funds[1:]
	return c
}

func (d *scriptedDecider) NegotiateTrade(n *trade.Negotiation) {
	if d.negotiate == nil {
		n.Cancel()
		return
	}
	d.negotiate(n)
}

func (d *scriptedDecider) RespondToTrade(*ledger.Player, trade.Offer) bool { return d.accept }

type table struct {
	reg     *board.Registry
	deck    *deck.Deck
	led     *ledger.Ledger
	engine  *TurnEngine
	decider *scriptedDecider
	events  []Event
}

func newTable(t *testing.T, players int, cards []deck.Card, d Dice) *table {
	t.Helper()
	reg, err := board.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cards == nil {
		cards = []deck.Card{{Message: "gain", Effect: deck.MoneyGain{Amount: 10}}}
	}
	dk := deck.New(cards, nil)
	led, err := ledger.New(reg, 4096, make([]string, players)...)
	if err != nil {
		t.Fatal(err)
	}
	tb := &table{reg: reg, deck: dk, led: led, decider: &scriptedDecider{}}
	tb.engine = NewTurnEngine(DefaultRules(), reg, dk, led, d, tb.decider)
	tb.engine.Observe(ObserverFunc(func(e Event) { tb.events = append(tb.events, e) }))
	return tb
}

func (tb *table) player(t *testing.T, number int) *ledger.Player {
	t.Helper()
	p, err := tb.led.ByNumber(number)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func (tb *table) give(t *testing.T, p *ledger.Player, positions ...int) {
	t.Helper()
	for _, pos := range positions {
		prop, err := tb.reg.PropertyAt(pos)
		if err != nil {
			t.Fatal(err)
		}
		tb.reg.SetOwner(prop, p.Number())
	}
}

func (tb *table) turn(t *testing.T) TurnReport {
	t.Helper()
	r, err := tb.engine.TakeTurn()
	if err != nil {
		t.Fatalf("TakeTurn() error = %v", err)
	}
	return r
}

func (tb *table) count(kind EventKind) int {
	n := 0
	for _, e := range tb.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func owner(t *testing.T, reg *board.Registry, pos int) int {
	t.Helper()
	p, err := reg.PropertyAt(pos)
	if err != nil {
		t.Fatal(err)
	}
	return p.Owner()
}
