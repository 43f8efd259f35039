package engine

import (
	"github.com/DedS3t/monopoly-engine/pkg/gameerr"
	"github.com/DedS3t/monopoly-engine/platform/board"
	"github.com/DedS3t/monopoly-engine/platform/deck"
	"github.com/DedS3t/monopoly-engine/platform/ledger"
)

// State is the turn state machine position.
type State string

const (
	StatePreRoll   State = "pre-roll"
	StateVacation  State = "vacation"
	StateRolling   State = "rolling"
	StateResolving State = "resolving"
	StateEndTurn   State = "end-turn"
	StateGameOver  State = "game-over"
)

// Rules holds the economy constants of a game.
type Rules struct {
	StartMoney        int
	RevolutionBonus   int
	VacationFee       int
	MaxDoubles        int
	MaxResolutionHops int
}

// DefaultRules returns the reference rule set.
func DefaultRules() Rules {
	return Rules{
		StartMoney:        4096,
		RevolutionBonus:   512,
		VacationFee:       128,
		MaxDoubles:        3,
		MaxResolutionHops: 8,
	}
}

// TurnReport summarizes one call to TakeTurn.
type TurnReport struct {
	Player     int      `json:"player"`
	Turn       int      `json:"turn"`
	Rolls      [][2]int `json:"rolls"`
	From       int      `json:"from"`
	To         int      `json:"to"`
	ExtraTurn  bool     `json:"extra_turn"`
	Eliminated bool     `json:"eliminated"`
	GameOver   bool     `json:"game_over"`
}

// TurnEngine sequences a turn: vacation handling, dice, movement, landing
// resolution and hand-off to the next player.
type TurnEngine struct {
	rules     Rules
	registry  *board.Registry
	deck      *deck.Deck
	ledger    *ledger.Ledger
	dice      Dice
	decider   Decider
	observers []Observer

	state   State
	current *ledger.Player
	turn    int
	doubles int
	goAgain bool
	report  TurnReport
}

// NewTurnEngine starts the engine on the first player of the ledger.
func NewTurnEngine(rules Rules, reg *board.Registry, d *deck.Deck, led *ledger.Ledger, dice Dice, decider Decider) *TurnEngine {
	if decider == nil {
		decider = PassiveDecider{}
	}
	return &TurnEngine{
		rules:    rules,
		registry: reg,
		deck:     d,
		ledger:   led,
		dice:     dice,
		decider:  decider,
		state:    StatePreRoll,
		current:  led.AllInGame()[0],
		turn:     1,
	}
}

// Observe registers an observer for every future event.
func (e *TurnEngine) Observe(o Observer) {
	e.observers = append(e.observers, o)
}

func (e *TurnEngine) State() State            { return e.state }
func (e *TurnEngine) Current() *ledger.Player { return e.current }
func (e *TurnEngine) Turn() int               { return e.turn }
func (e *TurnEngine) DoublesStreak() int      { return e.doubles }

func (e *TurnEngine) emit(ev Event) {
	ev.Turn = e.turn
	for _, o := range e.observers {
		o.Notify(ev)
	}
}

// TakeTurn plays the current player's turn up to the hand-off. It is the
// only way out of the pre-roll state.
func (e *TurnEngine) TakeTurn() (TurnReport, error) {
	if e.state != StatePreRoll {
		return TurnReport{}, gameerr.Newf(gameerr.CodeInvalidState, "cannot take a turn in state %s", e.state)
	}
	p := e.current
	e.report = TurnReport{Player: p.Number(), Turn: e.turn, From: p.Position()}

	if p.OnVacation() {
		e.state = StateVacation
		total, move, free := e.vacationTurn(p)
		switch {
		case move:
			e.advance(p, total)
			e.resolve(p)
		case free:
			e.rollAndMove(p)
		}
	} else {
		e.rollAndMove(p)
	}

	e.endTurn(p)
	return e.report, nil
}

func (e *TurnEngine) roll(p *ledger.Player) (int, int) {
	d1, d2 := e.dice.Roll()
	e.report.Rolls = append(e.report.Rolls, [2]int{d1, d2})
	e.emit(Event{Kind: EventRolled, Player: p.Number(), Amount: d1 + d2, Position: p.Position()})
	return d1, d2
}

func (e *TurnEngine) rollAndMove(p *ledger.Player) {
	e.state = StateRolling
	d1, d2 := e.roll(p)
	if d1 == d2 {
		e.doubles++
		if e.doubles >= e.rules.MaxDoubles {
			e.sendOnVacation(p)
			return
		}
		e.goAgain = true
	} else {
		e.goAgain = false
	}
	e.advance(p, d1+d2)
	e.resolve(p)
}

// vacationTurn spends exactly one vacation exit. It returns the roll total
// and move=true when doubles freed the player, or free=true when the player
// paid or used a card and now rolls normally.
func (e *TurnEngine) vacationTurn(p *ledger.Player) (total int, move, free bool) {
	if !p.OnVacation() {
		panic(gameerr.Newf(gameerr.CodeInvalidState, "%s is not on vacation", p.Name()))
	}
	var lastErr error
	for {
		exit := e.decider.ChooseVacationExit(VacationRequest{
			Player:  p,
			Fee:     e.rules.VacationFee,
			HasCard: p.VacationCards() > 0,
			Err:     lastErr,
		})
		lastErr = nil

		switch exit {
		case VacationPay:
			if !e.raiseFunds(p, e.rules.VacationFee, false) {
				lastErr = gameerr.Newf(gameerr.CodeInsufficientFunds, "%s cannot pay %d", p.Name(), e.rules.VacationFee)
				continue
			}
			gameerr.Must(p.Debit(e.rules.VacationFee))
			e.emit(Event{Kind: EventPaid, Player: p.Number(), Amount: e.rules.VacationFee, Message: "vacation fee"})
			e.leaveVacation(p)
			return 0, false, true

		case VacationUseCard:
			if err := p.TakeVacationCards(1); err != nil {
				lastErr = err
				continue
			}
			gameerr.Must(e.deck.ReinsertGetOffVacationCard())
			e.leaveVacation(p)
			return 0, false, true

		case VacationRollDoubles:
			d1, d2 := e.roll(p)
			if d1 == d2 {
				e.leaveVacation(p)
				return d1 + d2, true, false
			}
			if p.FailVacationTurn() {
				e.emit(Event{Kind: EventVacationLeft, Player: p.Number(), Position: p.Position()})
			}
			return 0, false, false

		default:
			lastErr = gameerr.Newf(gameerr.CodeInvalidChoice, "unknown vacation exit %q", exit)
		}
	}
}

func (e *TurnEngine) leaveVacation(p *ledger.Player) {
	p.LeaveVacation()
	e.emit(Event{Kind: EventVacationLeft, Player: p.Number(), Position: p.Position()})
}

// sendOnVacation also cancels any pending extra turn.
func (e *TurnEngine) sendOnVacation(p *ledger.Player) {
	p.SendOnVacation(e.registry.VacationPosition())
	e.goAgain = false
	e.doubles = 0
	e.emit(Event{Kind: EventVacationEntered, Player: p.Number(), Position: p.Position()})
}

// advance moves p by a signed delta. Passing the last space forward pays the
// revolution bonus once; moving back past the first space only wraps.
func (e *TurnEngine) advance(p *ledger.Player, delta int) {
	size := e.registry.Size()
	raw := p.Position() + delta
	target := ((raw-1)%size+size)%size + 1
	e.moveTo(p, target, raw > size)
}

// jump sends p to an absolute position; a target behind the current position
// counts as a wrap.
func (e *TurnEngine) jump(p *ledger.Player, target int) {
	e.moveTo(p, target, target < p.Position())
}

func (e *TurnEngine) moveTo(p *ledger.Player, target int, wrapped bool) {
	p.MoveTo(target)
	e.emit(Event{Kind: EventMoved, Player: p.Number(), Position: target})
	if wrapped {
		p.Credit(e.rules.RevolutionBonus)
		e.emit(Event{Kind: EventBonus, Player: p.Number(), Amount: e.rules.RevolutionBonus})
	}
}

// endTurn clears the per-turn flags and hands over, unless doubles earned
// the player another roll.
func (e *TurnEngine) endTurn(p *ledger.Player) {
	e.state = StateEndTurn
	e.report.To = p.Position()
	e.report.Eliminated = !p.InGame()
	e.emit(Event{Kind: EventTurnEnded, Player: p.Number(), Position: p.Position()})

	if e.ledger.InGameCount() <= 1 {
		e.finish()
		return
	}
	if e.goAgain && p.InGame() && !p.OnVacation() {
		e.goAgain = false
		e.report.ExtraTurn = true
		e.state = StatePreRoll
		return
	}
	e.handOff(p)
}

func (e *TurnEngine) handOff(p *ledger.Player) {
	e.goAgain = false
	e.doubles = 0
	e.current = e.ledger.NextAfter(p)
	e.turn++
	e.state = StatePreRoll
}

func (e *TurnEngine) finish() {
	e.state = StateGameOver
	e.report.GameOver = true
	winner := 0
	if w, err := e.ledger.Winner(); err == nil {
		winner = w.Number()
	}
	e.emit(Event{Kind: EventGameOver, Player: winner})
}
