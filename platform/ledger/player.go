package ledger

import (
	"github.com/DedS3t/monopoly-engine/pkg/gameerr"
)

// MaxVacationTurns is the number of failed doubles attempts after which a
// player leaves vacation on their own.
const MaxVacationTurns = 3

// Player is a participant in one game.
type Player struct {
	name          string
	number        int
	money         int
	position      int
	inGame        bool
	onVacation    bool
	vacationTurns int
	vacationCards int
}

// NewPlayer creates an in-game player at position 1. The number is assigned
// by the ledger.
func NewPlayer(name string, money int) *Player {
	return &Player{name: name, money: money, position: 1, inGame: true}
}

func (p *Player) Name() string       { return p.name }
func (p *Player) Number() int        { return p.number }
func (p *Player) Money() int         { return p.money }
func (p *Player) Position() int      { return p.position }
func (p *Player) InGame() bool       { return p.inGame }
func (p *Player) OnVacation() bool   { return p.onVacation }
func (p *Player) VacationTurns() int { return p.vacationTurns }
func (p *Player) VacationCards() int { return p.vacationCards }

// setNumber assigns the immutable player number.
func (p *Player) setNumber(n int) {
	if p.number != 0 {
		panic(gameerr.Newf(gameerr.CodeInvalidState, "player %q already has number %d", p.name, p.number))
	}
	p.number = n
}

// SetMoney assigns the balance; negative balances are rejected untouched.
func (p *Player) SetMoney(amount int) error {
	if amount < 0 {
		return gameerr.Newf(gameerr.CodeNegativeBalance, "%s cannot hold %d", p.name, amount)
	}
	p.money = amount
	return nil
}

// CanAfford reports whether the player holds at least amount.
func (p *Player) CanAfford(amount int) bool {
	return p.money >= amount
}

// Credit adds money.
func (p *Player) Credit(amount int) {
	gameerr.Must(p.SetMoney(p.money + amount))
}

// Debit removes money, failing with NegativeBalance when it would overdraw.
func (p *Player) Debit(amount int) error {
	return p.SetMoney(p.money - amount)
}

// MoveTo places the player on a position without any side effect.
func (p *Player) MoveTo(pos int) {
	p.position = pos
}

// SendOnVacation puts the player on the vacation space.
func (p *Player) SendOnVacation(vacationPos int) {
	p.position = vacationPos
	p.onVacation = true
	p.vacationTurns = 0
}

// LeaveVacation clears the vacation state.
func (p *Player) LeaveVacation() {
	p.onVacation = false
	p.vacationTurns = 0
}

// FailVacationTurn counts an unsuccessful vacation turn and reports whether
// the player is now free.
func (p *Player) FailVacationTurn() bool {
	if !p.onVacation {
		panic(gameerr.Newf(gameerr.CodeInvalidState, "%s is not on vacation", p.name))
	}
	p.vacationTurns++
	if p.vacationTurns >= MaxVacationTurns {
		p.LeaveVacation()
		return true
	}
	return false
}

// AddVacationCard gives the player a get-off-vacation-free card.
func (p *Player) AddVacationCard() {
	p.vacationCards++
}

// TakeVacationCards removes n cards from the player.
func (p *Player) TakeVacationCards(n int) error {
	if n < 0 || n > p.vacationCards {
		return gameerr.Newf(gameerr.CodeCardUnavailable, "%s holds %d cards, cannot give %d", p.name, p.vacationCards, n)
	}
	p.vacationCards -= n
	return nil
}

// AddVacationCards gives the player n cards.
func (p *Player) AddVacationCards(n int) {
	p.vacationCards += n
}
