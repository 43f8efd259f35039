package ledger

import (
	"errors"
	"testing"

	"github.com/DedS3t/monopoly-engine/pkg/gameerr"
	"github.com/DedS3t/monopoly-engine/platform/board"
)

func newLedger(t *testing.T, names ...string) (*Ledger, *board.Registry) {
	t.Helper()
	reg, err := board.Load()
	if err != nil {
		t.Fatalf("board.Load() error = %v", err)
	}
	l, err := New(reg, 4096, names...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l, reg
}

func TestNewValidatesNames(t *testing.T) {
	reg, _ := board.Load()
	tests := []struct {
		name  string
		names []string
		ok    bool
	}{
		{name: "too few", names: []string{"a"}},
		{name: "too many", names: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}},
		{name: "duplicate", names: []string{"Ann", "ann"}},
		{name: "ok", names: []string{"Ann", "Bob"}, ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(reg, 100, tt.names...)
			if tt.ok && err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if !tt.ok && !errors.Is(err, gameerr.ErrInvalidPlayers) {
				t.Fatalf("New() error = %v, want InvalidPlayers", err)
			}
		})
	}
}

func TestNewDefaultsBlankNames(t *testing.T) {
	l, _ := newLedger(t, "Ann", " ", "")
	got := []string{}
	for _, p := range l.All() {
		got = append(got, p.Name())
	}
	want := []string{"Ann", "Player 2", "Player 3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names = %v, want %v", got, want)
		}
	}
	if l.All()[2].Number() != 3 || l.All()[2].Position() != 1 {
		t.Fatal("players must be numbered in order and start on position 1")
	}
}

func TestNextAfterSkipsEliminated(t *testing.T) {
	l, _ := newLedger(t, "a", "b", "c", "d")
	ps := l.All()
	l.Eliminate(ps[1])
	l.Eliminate(ps[2])

	if got := l.NextAfter(ps[0]); got != ps[3] {
		t.Fatalf("NextAfter(a) = %s, want d", got.Name())
	}
	if got := l.NextAfter(ps[3]); got != ps[0] {
		t.Fatalf("NextAfter(d) = %s, want a", got.Name())
	}
	if got := len(l.OthersExcluding(ps[0])); got != 1 {
		t.Fatalf("len(OthersExcluding(a)) = %d, want 1", got)
	}
}

func TestWinner(t *testing.T) {
	l, _ := newLedger(t, "a", "b", "c")
	if _, err := l.Winner(); !errors.Is(err, gameerr.ErrInvalidState) {
		t.Fatalf("Winner() error = %v, want InvalidState", err)
	}
	ps := l.All()
	l.Eliminate(ps[0])
	l.Eliminate(ps[2])
	w, err := l.Winner()
	if err != nil || w != ps[1] {
		t.Fatalf("Winner() = %v, %v", w, err)
	}
}

func TestMoneyNeverNegative(t *testing.T) {
	l, _ := newLedger(t, "a", "b")
	a, b := l.All()[0], l.All()[1]

	if err := a.SetMoney(-1); !errors.Is(err, gameerr.ErrNegativeBalance) {
		t.Fatalf("SetMoney(-1) error = %v", err)
	}
	if err := l.Transfer(a, b, 5000); !errors.Is(err, gameerr.ErrNegativeBalance) {
		t.Fatalf("Transfer() error = %v", err)
	}
	if a.Money() != 4096 || b.Money() != 4096 {
		t.Fatalf("failed transfer changed balances: %d/%d", a.Money(), b.Money())
	}
	if err := l.Transfer(a, b, 96); err != nil {
		t.Fatal(err)
	}
	if l.TotalMoney() != 2*4096 {
		t.Fatalf("TotalMoney() = %d, want %d", l.TotalMoney(), 2*4096)
	}
}

func TestVacationCounter(t *testing.T) {
	l, reg := newLedger(t, "a", "b")
	a := l.All()[0]
	a.SendOnVacation(reg.VacationPosition())
	if a.FailVacationTurn() || a.FailVacationTurn() {
		t.Fatal("player freed too early")
	}
	if !a.FailVacationTurn() {
		t.Fatal("third failed turn must free the player")
	}
	if a.OnVacation() || a.VacationTurns() != 0 {
		t.Fatal("vacation state not cleared")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("FailVacationTurn() off vacation must panic")
		}
	}()
	a.FailVacationTurn()
}

func TestEliminateReleasesProperties(t *testing.T) {
	l, reg := newLedger(t, "a", "b")
	a, b := l.All()[0], l.All()[1]
	p, _ := reg.PropertyAt(7)
	q, _ := reg.PropertyAt(9)
	reg.SetOwner(p, a.Number())
	reg.SetOwner(q, a.Number())

	l.Eliminate(a)
	if a.InGame() || p.Owner() != board.NoOwner {
		t.Fatal("eliminated player kept its properties")
	}
	if got := l.NextAfter(b); got != b {
		t.Fatalf("NextAfter() with one player left = %s, want b", got.Name())
	}
}

func TestEliminateTakesVacationCards(t *testing.T) {
	tests := []struct {
		name     string
		creditor bool
	}{
		{"to bank", false},
		{"to creditor", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newLedger(t, "a", "b")
			a, b := l.All()[0], l.All()[1]
			a.AddVacationCards(2)
			b.AddVacationCard()

			var got int
			if tt.creditor {
				got = l.EliminateInto(a, b)
			} else {
				got = l.Eliminate(a)
			}
			if got != 2 {
				t.Fatalf("returned %d cards, want 2", got)
			}
			if a.VacationCards() != 0 {
				t.Fatalf("eliminated player still holds %d cards", a.VacationCards())
			}
			if b.VacationCards() != 1 || l.TotalVacationCards() != 1 {
				t.Fatalf("b=%d total=%d, want 1 and 1", b.VacationCards(), l.TotalVacationCards())
			}
		})
	}
}

func TestEliminateIntoCreditor(t *testing.T) {
	l, reg := newLedger(t, "a", "b", "c")
	a, b := l.All()[0], l.All()[1]
	p, _ := reg.PropertyAt(7)
	reg.SetOwner(p, a.Number())
	a.SetMoney(30)

	l.EliminateInto(a, b)
	if a.InGame() || a.Money() != 0 {
		t.Fatal("player not eliminated")
	}
	if b.Money() != 4126 || p.Owner() != b.Number() {
		t.Fatalf("creditor money=%d owner=%d", b.Money(), p.Owner())
	}
}
