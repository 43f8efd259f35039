package deck

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/DedS3t/monopoly-engine/pkg/gameerr"
	"github.com/DedS3t/monopoly-engine/platform/board"
)

func testDeck() *Deck {
	return New([]Card{
		{Message: "gain", Effect: MoneyGain{Amount: 10}},
		{Message: "free", Effect: GetOffVacationFree{}},
		{Message: "loss", Effect: MoneyLoss{Amount: 5}},
		{Message: "free", Effect: GetOffVacationFree{}},
	}, rand.New(rand.NewSource(1)))
}

func TestAdvanceWraps(t *testing.T) {
	d := testDeck()
	for i := 0; i < 4; i++ {
		d.Advance()
	}
	if d.Top().Message != "gain" {
		t.Fatalf("Top() after full cycle = %q, want gain", d.Top().Message)
	}
}

func TestWithdrawRequiresVacationCard(t *testing.T) {
	d := testDeck()
	if _, err := d.WithdrawGetOffVacationCardAtTop(); !errors.Is(err, gameerr.ErrCardUnavailable) {
		t.Fatalf("Withdraw() error = %v, want CardUnavailable", err)
	}
	if d.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", d.Len())
	}
}

func TestWithdrawAtEndNormalizesCursor(t *testing.T) {
	d := testDeck()
	d.Advance()
	d.Advance()
	d.Advance()
	if _, err := d.WithdrawGetOffVacationCardAtTop(); err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}
	if d.Len() != 3 || d.Top().Message != "gain" {
		t.Fatalf("Len() = %d Top() = %q, want 3 and gain", d.Len(), d.Top().Message)
	}
}

func TestWithdrawReinsertConservesCards(t *testing.T) {
	tests := []struct {
		name     string
		advances int
	}{
		{name: "first free card", advances: 1},
		{name: "last card", advances: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testDeck()
			held := 0
			for i := 0; i < tt.advances; i++ {
				d.Advance()
			}
			before := d.Len()
			inCirculation := d.CountGetOffVacation() + held

			if _, err := d.WithdrawGetOffVacationCardAtTop(); err != nil {
				t.Fatalf("Withdraw() error = %v", err)
			}
			held++
			if got := d.CountGetOffVacation() + held; got != inCirculation {
				t.Fatalf("circulation after withdraw = %d, want %d", got, inCirculation)
			}
			topAfterWithdraw := d.Top()

			if err := d.ReinsertGetOffVacationCard(); err != nil {
				t.Fatalf("Reinsert() error = %v", err)
			}
			held--
			if d.Len() != before {
				t.Fatalf("Len() = %d, want %d", d.Len(), before)
			}
			if got := d.CountGetOffVacation() + held; got != inCirculation {
				t.Fatalf("circulation after reinsert = %d, want %d", got, inCirculation)
			}
			if d.Top() != topAfterWithdraw {
				t.Fatalf("Top() moved on reinsert: %q, want %q", d.Top().Message, topAfterWithdraw.Message)
			}
		})
	}
}

func TestReinsertedCardIsDrawnLast(t *testing.T) {
	d := testDeck()
	d.Advance()
	d.WithdrawGetOffVacationCardAtTop()
	d.ReinsertGetOffVacationCard()

	var order []string
	for i := 0; i < d.Len(); i++ {
		order = append(order, d.Top().Message)
		d.Advance()
	}
	want := []string{"loss", "free", "gain", "free"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("draw order = %v, want %v", order, want)
		}
	}
}

func TestReinsertWithoutTemplate(t *testing.T) {
	d := New([]Card{{Message: "gain", Effect: MoneyGain{Amount: 1}}}, rand.New(rand.NewSource(1)))
	if err := d.ReinsertGetOffVacationCard(); !errors.Is(err, gameerr.ErrCardUnavailable) {
		t.Fatalf("Reinsert() error = %v", err)
	}
}

func TestShuffleKeepsCards(t *testing.T) {
	d := testDeck()
	d.Advance()
	d.Shuffle()
	if d.Len() != 4 || d.CountGetOffVacation() != 2 {
		t.Fatalf("Shuffle() changed the deck: len=%d free=%d", d.Len(), d.CountGetOffVacation())
	}
}

func TestLoadResolvesAbsoluteMoves(t *testing.T) {
	reg, err := board.Load()
	if err != nil {
		t.Fatal(err)
	}
	d, err := Load(reg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d.CountGetOffVacation() != 2 {
		t.Fatalf("CountGetOffVacation() = %d, want 2", d.CountGetOffVacation())
	}
	found := false
	for i := 0; i < d.Len(); i++ {
		if m, ok := d.Top().Effect.(AbsoluteMove); ok && m.Property == "Skyline Avenue" {
			found = true
			if m.Target != 34 {
				t.Fatalf("Skyline Avenue target = %d, want 34", m.Target)
			}
		}
		d.Advance()
	}
	if !found {
		t.Fatal("Skyline Avenue card not found")
	}
}
