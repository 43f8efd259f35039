package table

import (
	"github.com/DedS3t/monopoly-engine/pkg/gameerr"
	"github.com/DedS3t/monopoly-engine/platform/board"
	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/DedS3t/monopoly-engine/platform/ledger"
	"github.com/DedS3t/monopoly-engine/platform/trade"
)

// PromptKind names the decision a prompt waits for.
type PromptKind string

const (
	PromptPurchase      PromptKind = "purchase"
	PromptVacation      PromptKind = "vacation"
	PromptFunds         PromptKind = "funds"
	PromptTrade         PromptKind = "trade"
	PromptTradeResponse PromptKind = "trade-response"
)

// Prompt is a decision the engine is blocked on.
type Prompt struct {
	ID        int          `json:"id"`
	Kind      PromptKind   `json:"kind"`
	Player    int          `json:"player"`
	Position  int          `json:"position,omitempty"`
	Price     int          `json:"price,omitempty"`
	Fee       int          `json:"fee,omitempty"`
	HasCard   bool         `json:"has_card,omitempty"`
	Owed      int          `json:"owed,omitempty"`
	Mandatory bool         `json:"mandatory,omitempty"`
	Options   []string     `json:"options,omitempty"`
	Offer     *trade.Offer `json:"offer,omitempty"`
	Error     string       `json:"error,omitempty"`
}

// Answer resolves the prompt with the same ID. Only the fields of the
// prompt's kind are read.
type Answer struct {
	Prompt int `json:"prompt"`

	// purchase and trade-response
	Yes bool `json:"yes"`
	// vacation
	Exit string `json:"exit"`
	// funds
	Option   string `json:"option"`
	Position int    `json:"position"`
	// trade
	Cancel      bool         `json:"cancel"`
	Counterpart int          `json:"counterpart"`
	Wanted      trade.Bundle `json:"wanted"`
	Offered     trade.Bundle `json:"offered"`
}

// decider bridges engine decisions to prompts answered from outside the
// worker. A closed table answers every prompt with the zero Answer, which
// declines, gives up or cancels.
type decider struct {
	t *Table
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (d decider) ConfirmPurchase(p *ledger.Player, prop board.Property) bool {
	a := d.t.ask(Prompt{
		Kind:     PromptPurchase,
		Player:   p.Number(),
		Position: prop.Position(),
		Price:    prop.PurchasePrice(),
	})
	return a.Yes
}

func (d decider) ChooseVacationExit(req engine.VacationRequest) engine.VacationExit {
	a := d.t.ask(Prompt{
		Kind:    PromptVacation,
		Player:  req.Player.Number(),
		Fee:     req.Fee,
		HasCard: req.HasCard,
		Error:   errString(req.Err),
	})
	if a.Exit == "" {
		return engine.VacationRollDoubles
	}
	return engine.VacationExit(a.Exit)
}

func (d decider) RaiseFunds(req engine.FundsRequest) engine.FundsChoice {
	options := make([]string, 0, len(req.Options))
	for _, o := range req.Options {
		options = append(options, string(o))
	}
	a := d.t.ask(Prompt{
		Kind:      PromptFunds,
		Player:    req.Player.Number(),
		Owed:      req.Owed,
		Mandatory: req.Mandatory,
		Options:   options,
		Error:     errString(req.Err),
	})
	if a.Option == "" {
		return engine.PassiveDecider{}.RaiseFunds(req)
	}
	return engine.FundsChoice{Option: engine.FundsOption(a.Option), Position: a.Position}
}

func (d decider) NegotiateTrade(n *trade.Negotiation) {
	var lastErr error
	for {
		a := d.t.ask(Prompt{
			Kind:      PromptTrade,
			Player:    n.Initiator().Number(),
			Mandatory: n.MandatoryMoney(),
			Error:     errString(lastErr),
		})
		if a.Cancel || a.Counterpart == 0 {
			n.Cancel()
			return
		}
		// Propose cancels on failure, so validate on a scratch negotiation first
		check := trade.New(d.t.ctrl.Registry(), d.t.ctrl.Ledger(), n.Initiator(), n.MandatoryMoney())
		if lastErr = check.Propose(a.Counterpart, a.Wanted, a.Offered); lastErr == nil {
			gameerr.Must(n.Propose(a.Counterpart, a.Wanted, a.Offered))
			return
		}
	}
}

func (d decider) RespondToTrade(counterpart *ledger.Player, offer trade.Offer) bool {
	a := d.t.ask(Prompt{
		Kind:   PromptTradeResponse,
		Player: counterpart.Number(),
		Offer:  &offer,
	})
	return a.Yes
}
