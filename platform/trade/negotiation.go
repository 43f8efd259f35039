// Package trade implements the negotiation protocol between two players.
package trade

import (
	"sort"

	"github.com/DedS3t/monopoly-engine/pkg/gameerr"
	"github.com/DedS3t/monopoly-engine/platform/board"
	"github.com/DedS3t/monopoly-engine/platform/ledger"
)

// Bundle is one side of a trade.
type Bundle struct {
	Money      int   `json:"money"`
	Properties []int `json:"properties"` // board positions
	Cards      int   `json:"cards"`
}

// Empty reports whether the bundle carries nothing.
func (b Bundle) Empty() bool {
	return b.Money == 0 && len(b.Properties) == 0 && b.Cards == 0
}

func (b Bundle) normalized() Bundle {
	seen := make(map[int]bool, len(b.Properties))
	props := make([]int, 0, len(b.Properties))
	for _, pos := range b.Properties {
		if !seen[pos] {
			seen[pos] = true
			props = append(props, pos)
		}
	}
	sort.Ints(props)
	b.Properties = props
	return b
}

// Offer is a complete proposal.
type Offer struct {
	Initiator   int    `json:"initiator"`
	Counterpart int    `json:"counterpart"`
	Offered     Bundle `json:"offered"` // given by the initiator
	Wanted      Bundle `json:"wanted"`  // given by the counterpart
}

// Stage is the protocol step a negotiation is waiting on.
type Stage int

const (
	StageCounterpart Stage = iota
	StageWanted
	StageOffered
	StageConfirm
	StageResponse
	StageAccepted
	StageDeclined
	StageCancelled
)

func (s Stage) String() string {
	return [...]string{"counterpart", "wanted", "offered", "confirm", "response", "accepted", "declined", "cancelled"}[s]
}

// Result describes an applied trade.
type Result struct {
	Offer   Offer
	Refunds []board.Refund
}

// Negotiation walks one trade from counterpart selection to a final answer.
// Nothing is applied before Accept.
type Negotiation struct {
	registry       *board.Registry
	ledger         *ledger.Ledger
	initiator      *ledger.Player
	counterpart    *ledger.Player
	mandatoryMoney bool
	stage          Stage
	offer          Offer
}

// New starts a negotiation. mandatoryMoney is set when the initiator is
// raising funds and must receive money.
func New(reg *board.Registry, led *ledger.Ledger, initiator *ledger.Player, mandatoryMoney bool) *Negotiation {
	return &Negotiation{
		registry:       reg,
		ledger:         led,
		initiator:      initiator,
		mandatoryMoney: mandatoryMoney,
		offer:          Offer{Initiator: initiator.Number()},
	}
}

func (n *Negotiation) Stage() Stage                 { return n.stage }
func (n *Negotiation) Offer() Offer                 { return n.offer }
func (n *Negotiation) Initiator() *ledger.Player    { return n.initiator }
func (n *Negotiation) Counterpart() *ledger.Player  { return n.counterpart }
func (n *Negotiation) MandatoryMoney() bool         { return n.mandatoryMoney }
func (n *Negotiation) Candidates() []*ledger.Player { return n.ledger.OthersExcluding(n.initiator) }

// HasTradeable reports whether p holds anything besides money.
func HasTradeable(reg *board.Registry, p *ledger.Player) bool {
	return p.VacationCards() > 0 || len(reg.OwnedBy(p.Number())) > 0
}

func (n *Negotiation) expect(stage Stage) error {
	if n.stage != stage {
		return gameerr.Newf(gameerr.CodeInvalidState, "trade is at %s, not %s", n.stage, stage)
	}
	return nil
}

// SelectCounterpart picks the other side. It fails with NothingToTrade when
// neither side holds anything but money.
func (n *Negotiation) SelectCounterpart(number int) error {
	if err := n.expect(StageCounterpart); err != nil {
		return err
	}
	other, err := n.ledger.ByNumber(number)
	if err != nil {
		return err
	}
	if other == n.initiator || !other.InGame() {
		return gameerr.Newf(gameerr.CodeInvalidChoice, "cannot trade with %s", other.Name())
	}
	if !HasTradeable(n.registry, n.initiator) && !HasTradeable(n.registry, other) {
		return gameerr.New(gameerr.CodeNothingToTrade, "neither player has anything to trade besides money")
	}
	n.counterpart = other
	n.offer.Counterpart = other.Number()
	n.stage = StageWanted
	return nil
}

// Want sets what the initiator asks from the counterpart.
func (n *Negotiation) Want(b Bundle) error {
	if err := n.expect(StageWanted); err != nil {
		return err
	}
	b = b.normalized()
	if n.mandatoryMoney && b.Money <= 0 {
		return gameerr.New(gameerr.CodeInvalidTrade, "the trade must bring in money")
	}
	if err := n.validate(b, n.counterpart); err != nil {
		return err
	}
	n.offer.Wanted = b
	n.stage = StageOffered
	return nil
}

// Give sets what the initiator hands over. Money can only flow one way.
func (n *Negotiation) Give(b Bundle) error {
	if err := n.expect(StageOffered); err != nil {
		return err
	}
	b = b.normalized()
	if b.Money > 0 && n.offer.Wanted.Money > 0 {
		return gameerr.New(gameerr.CodeInvalidTrade, "cannot offer money while asking for money")
	}
	if err := n.validate(b, n.initiator); err != nil {
		return err
	}
	n.offer.Offered = b
	n.stage = StageConfirm
	return nil
}

// Confirm submits the offer to the counterpart.
func (n *Negotiation) Confirm() error {
	if err := n.expect(StageConfirm); err != nil {
		return err
	}
	n.stage = StageResponse
	return nil
}

// Propose runs the initiator's steps in one go: counterpart, wanted bundle,
// offered bundle, confirmation. On error the negotiation is cancelled.
func (n *Negotiation) Propose(counterpart int, wanted, offered Bundle) error {
	steps := []func() error{
		func() error { return n.SelectCounterpart(counterpart) },
		func() error { return n.Want(wanted) },
		func() error { return n.Give(offered) },
		n.Confirm,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			n.Cancel()
			return err
		}
	}
	return nil
}

// Cancel abandons the negotiation at any step before an answer.
func (n *Negotiation) Cancel() {
	if n.stage < StageAccepted {
		n.stage = StageCancelled
	}
}

// Decline records the counterpart's refusal.
func (n *Negotiation) Decline() error {
	if err := n.expect(StageResponse); err != nil {
		return err
	}
	n.stage = StageDeclined
	return nil
}

// Accept applies both bundles at once. Either everything moves or nothing.
func (n *Negotiation) Accept() (Result, error) {
	if err := n.expect(StageResponse); err != nil {
		return Result{}, err
	}
	if err := n.validate(n.offer.Wanted, n.counterpart); err != nil {
		return Result{}, err
	}
	if err := n.validate(n.offer.Offered, n.initiator); err != nil {
		return Result{}, err
	}

	res := Result{Offer: n.offer}
	res.Refunds = append(res.Refunds, n.move(n.offer.Offered, n.initiator, n.counterpart)...)
	res.Refunds = append(res.Refunds, n.move(n.offer.Wanted, n.counterpart, n.initiator)...)
	for _, r := range res.Refunds {
		p, err := n.ledger.ByNumber(r.Owner)
		gameerr.Must(err)
		p.Credit(r.Amount)
	}
	n.stage = StageAccepted
	return res, nil
}

// move transfers a validated bundle. Restaurants of a neighborhood the
// seller held whole are sold back before the street changes hands.
func (n *Negotiation) move(b Bundle, from, to *ledger.Player) []board.Refund {
	var refunds []board.Refund
	gameerr.Must(n.ledger.Transfer(from, to, b.Money))
	gameerr.Must(from.TakeVacationCards(b.Cards))
	to.AddVacationCards(b.Cards)
	for _, pos := range b.Properties {
		p, err := n.registry.PropertyAt(pos)
		gameerr.Must(err)
		if r := n.registry.SetOwner(p, to.Number()); r.Amount > 0 {
			refunds = append(refunds, r)
		}
	}
	return refunds
}

func (n *Negotiation) validate(b Bundle, holder *ledger.Player) error {
	if b.Empty() {
		return gameerr.New(gameerr.CodeInvalidTrade, "a trade side cannot be empty")
	}
	if b.Money < 0 || b.Cards < 0 {
		return gameerr.New(gameerr.CodeInvalidTrade, "amounts cannot be negative")
	}
	if b.Money > holder.Money() {
		return gameerr.Newf(gameerr.CodeInvalidTrade, "%s only has %d", holder.Name(), holder.Money())
	}
	if b.Cards > holder.VacationCards() {
		return gameerr.Newf(gameerr.CodeInvalidTrade, "%s only holds %d cards", holder.Name(), holder.VacationCards())
	}
	for _, pos := range b.Properties {
		p, err := n.registry.PropertyAt(pos)
		if err != nil {
			return err
		}
		if p.Owner() != holder.Number() {
			return gameerr.Newf(gameerr.CodeInvalidTrade, "%s does not own %s", holder.Name(), p.Name())
		}
	}
	return nil
}
