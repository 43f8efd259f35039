// Package deck implements the circular action card deck.
package deck

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/pkg/gameerr"
	"github.com/DedS3t/monopoly-engine/platform/board"
)

//go:embed cards.json
var cardsJSON []byte

// Deck is a circular list of cards with a top cursor. Drawing only moves the
// cursor; get-off-vacation-free cards leave the deck while a player holds
// them.
type Deck struct {
	cards []Card
	top   int
	spare *Card
	rng   *rand.Rand
}

// New builds a deck in the given order.
func New(cards []Card, rng *rand.Rand) *Deck {
	d := &Deck{cards: append([]Card(nil), cards...), rng: rng}
	for _, c := range d.cards {
		if c.IsGetOffVacation() {
			c := c
			d.spare = &c
			break
		}
	}
	return d
}

// Load builds the reference deck. Absolute moves are resolved to board
// positions here, once.
func Load(reg *board.Registry, rng *rand.Rand) (*Deck, error) {
	var defs []models.Card
	if err := json.Unmarshal(cardsJSON, &defs); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}
	cards, err := Build(reg, defs)
	if err != nil {
		return nil, err
	}
	return New(cards, rng), nil
}

// Build turns card definitions into cards.
func Build(reg *board.Registry, defs []models.Card) ([]Card, error) {
	cards := make([]Card, 0, len(defs))
	for _, def := range defs {
		c := Card{Message: def.Message}
		switch def.Type {
		case "money-gain":
			c.Effect = MoneyGain{Amount: def.Value}
		case "money-loss":
			c.Effect = MoneyLoss{Amount: def.Value}
		case "player-pays-others":
			c.Effect = PlayerPaysOthers{Amount: def.Value}
		case "others-pay-player":
			c.Effect = OthersPayPlayer{Amount: def.Value}
		case "relative-move":
			c.Effect = RelativeMove{Spaces: def.Value}
		case "absolute-move":
			p, err := reg.PropertyByName(def.Property)
			if err != nil {
				return nil, fmt.Errorf("card %q: %w", def.Message, err)
			}
			c.Effect = AbsoluteMove{Target: p.Position(), Property: p.Name()}
		case "property-maintenance-fee":
			c.Effect = MaintenanceFee{PerRestaurant: def.Value}
		case "get-off-vacation-free":
			c.Effect = GetOffVacationFree{}
		case "go-on-vacation":
			c.Effect = GoOnVacation{}
		default:
			return nil, gameerr.Newf(gameerr.CodeInvalidState, "unknown card type %q", def.Type)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// Len returns the number of cards currently in the deck.
func (d *Deck) Len() int { return len(d.cards) }

// Top returns the card under the cursor.
func (d *Deck) Top() Card {
	if len(d.cards) == 0 {
		panic(gameerr.New(gameerr.CodeInvalidState, "empty action deck"))
	}
	return d.cards[d.top]
}

// Advance moves the cursor to the next card, wrapping at the end.
func (d *Deck) Advance() {
	if len(d.cards) == 0 {
		return
	}
	d.top = (d.top + 1) % len(d.cards)
}

// WithdrawGetOffVacationCardAtTop removes the top card, which must be a
// get-off-vacation-free card. The cursor then points at the following card.
func (d *Deck) WithdrawGetOffVacationCardAtTop() (Card, error) {
	if len(d.cards) == 0 || !d.cards[d.top].IsGetOffVacation() {
		return Card{}, gameerr.New(gameerr.CodeCardUnavailable, "top card is not a get-off-vacation-free card")
	}
	c := d.cards[d.top]
	d.cards = append(d.cards[:d.top], d.cards[d.top+1:]...)
	if d.top >= len(d.cards) {
		d.top = 0
	}
	return c, nil
}

// ReinsertGetOffVacationCard puts a returned card directly behind the cursor
// so it is drawn last. Top is unaffected.
func (d *Deck) ReinsertGetOffVacationCard() error {
	if d.spare == nil {
		return gameerr.New(gameerr.CodeCardUnavailable, "deck never had a get-off-vacation-free card")
	}
	d.cards = append(d.cards, Card{})
	copy(d.cards[d.top+1:], d.cards[d.top:])
	d.cards[d.top] = *d.spare
	if len(d.cards) > 1 {
		d.top++
	}
	return nil
}

// CountGetOffVacation counts get-off-vacation-free cards in the deck.
func (d *Deck) CountGetOffVacation() int {
	n := 0
	for _, c := range d.cards {
		if c.IsGetOffVacation() {
			n++
		}
	}
	return n
}

// Shuffle randomizes the order and resets the cursor.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) { d.cards[i], d.cards[j] = d.cards[j], d.cards[i] })
	d.top = 0
}
