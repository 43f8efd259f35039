package ledger

import (
	"fmt"
	"strings"

	"github.com/DedS3t/monopoly-engine/pkg/gameerr"
	"github.com/DedS3t/monopoly-engine/platform/board"
)

const (
	MinPlayers = 2
	MaxPlayers = 8
)

// Ledger holds the players of one game in fixed turn order.
type Ledger struct {
	players  []*Player
	registry *board.Registry
}

// New seats players in the given order with the same starting money. Blank
// names default to "Player N"; duplicates are rejected.
func New(registry *board.Registry, startMoney int, names ...string) (*Ledger, error) {
	if len(names) < MinPlayers || len(names) > MaxPlayers {
		return nil, gameerr.Newf(gameerr.CodeInvalidPlayers, "need %d to %d players, got %d", MinPlayers, MaxPlayers, len(names))
	}
	l := &Ledger{registry: registry}
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		if seen[strings.ToLower(name)] {
			return nil, gameerr.Newf(gameerr.CodeInvalidPlayers, "duplicate player name %q", name)
		}
		seen[strings.ToLower(name)] = true

		p := NewPlayer(name, startMoney)
		p.setNumber(i + 1)
		l.players = append(l.players, p)
	}
	return l, nil
}

// All returns every player, eliminated or not, in turn order.
func (l *Ledger) All() []*Player {
	return append([]*Player(nil), l.players...)
}

// AllInGame returns the players still in the game, in turn order.
func (l *Ledger) AllInGame() []*Player {
	var out []*Player
	for _, p := range l.players {
		if p.inGame {
			out = append(out, p)
		}
	}
	return out
}

// InGameCount returns how many players are left.
func (l *Ledger) InGameCount() int {
	n := 0
	for _, p := range l.players {
		if p.inGame {
			n++
		}
	}
	return n
}

// ByNumber looks a player up by number.
func (l *Ledger) ByNumber(number int) (*Player, error) {
	if number < 1 || number > len(l.players) {
		return nil, gameerr.Newf(gameerr.CodeInvalidChoice, "no player %d", number)
	}
	return l.players[number-1], nil
}

// NextAfter returns the next in-game player after p, wrapping around. It
// returns p itself when nobody else is left.
func (l *Ledger) NextAfter(p *Player) *Player {
	idx := p.number - 1
	for i := 1; i <= len(l.players); i++ {
		next := l.players[(idx+i)%len(l.players)]
		if next.inGame {
			return next
		}
	}
	return p
}

// OthersExcluding returns every in-game player except p, in turn order.
func (l *Ledger) OthersExcluding(p *Player) []*Player {
	var out []*Player
	for _, other := range l.players {
		if other.inGame && other != p {
			out = append(out, other)
		}
	}
	return out
}

// Eliminate removes p from the game. Its money and properties go to the bank.
// The player's vacation cards are taken from it and their count returned so
// the caller can put them back into the deck.
func (l *Ledger) Eliminate(p *Player) int {
	if !p.inGame {
		panic(gameerr.Newf(gameerr.CodeInvalidState, "%s is already eliminated", p.name))
	}
	p.inGame = false
	p.money = 0
	p.onVacation = false
	p.vacationTurns = 0
	cards := p.vacationCards
	p.vacationCards = 0
	l.registry.ReleaseAllOwnedBy(p.number)
	return cards
}

// EliminateInto removes p from the game and hands its money and properties
// to creditor. Vacation cards are returned as with Eliminate.
func (l *Ledger) EliminateInto(p, creditor *Player) int {
	money := p.money
	p.money = 0
	creditor.Credit(money)
	l.registry.TransferAllOwnedBy(p.number, creditor.number)
	return l.Eliminate(p)
}

// Transfer moves money between players.
func (l *Ledger) Transfer(from, to *Player, amount int) error {
	if err := from.Debit(amount); err != nil {
		return err
	}
	to.Credit(amount)
	return nil
}

// Winner returns the last player in the game.
func (l *Ledger) Winner() (*Player, error) {
	left := l.AllInGame()
	if len(left) != 1 {
		return nil, gameerr.Newf(gameerr.CodeInvalidState, "%d players still in game", len(left))
	}
	return left[0], nil
}

// TotalMoney sums the money of every player.
func (l *Ledger) TotalMoney() int {
	total := 0
	for _, p := range l.players {
		total += p.money
	}
	return total
}

// TotalVacationCards sums the get-off-vacation-free cards held by players.
func (l *Ledger) TotalVacationCards() int {
	total := 0
	for _, p := range l.players {
		total += p.vacationCards
	}
	return total
}
