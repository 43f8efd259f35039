package engine

import (
	"math/rand"
	"sort"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/pkg/gameerr"
	"github.com/DedS3t/monopoly-engine/platform/board"
	"github.com/DedS3t/monopoly-engine/platform/deck"
	"github.com/DedS3t/monopoly-engine/platform/ledger"
	"github.com/DedS3t/monopoly-engine/platform/trade"
)

// Action is one entry of the pre-roll capability set.
type Action string

const (
	ActionViewInfo       Action = "view-info"
	ActionTrade          Action = "trade"
	ActionDevelop        Action = "develop"
	ActionSellRestaurant Action = "sell-restaurant"
	ActionPawn           Action = "pawn"
	ActionUnpawn         Action = "unpawn"
	ActionDropOut        Action = "drop-out"
	ActionEndGame        Action = "end-game"
	ActionTakeTurn       Action = "take-turn"
)

// Config describes a new game. Zero fields fall back to the reference
// rules, random dice and a passive decider.
type Config struct {
	Names     []string
	Rules     Rules
	Rand      *rand.Rand
	Dice      Dice
	Decider   Decider
	Shuffle   bool
	Observers []Observer
}

// Controller is the single entry point of a game.
type Controller struct {
	registry   *board.Registry
	deck       *deck.Deck
	ledger     *ledger.Ledger
	engine     *TurnEngine
	endedEarly bool
}

// NewGame builds the board, the deck and the players and seats the first
// player in pre-roll.
func NewGame(cfg Config) (*Controller, error) {
	if cfg.Rules == (Rules{}) {
		cfg.Rules = DefaultRules()
	}
	if cfg.Rand == nil {
		seed, err := NewSeed()
		if err != nil {
			return nil, err
		}
		cfg.Rand = rand.New(rand.NewSource(seed))
	}
	if cfg.Dice == nil {
		cfg.Dice = NewRandomDice(cfg.Rand)
	}

	reg, err := board.Load()
	if err != nil {
		return nil, err
	}
	d, err := deck.Load(reg, cfg.Rand)
	if err != nil {
		return nil, err
	}
	if cfg.Shuffle {
		d.Shuffle()
	}
	led, err := ledger.New(reg, cfg.Rules.StartMoney, cfg.Names...)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		registry: reg,
		deck:     d,
		ledger:   led,
		engine:   NewTurnEngine(cfg.Rules, reg, d, led, cfg.Dice, cfg.Decider),
	}
	for _, o := range cfg.Observers {
		c.engine.Observe(o)
	}
	return c, nil
}

func (c *Controller) Registry() *board.Registry { return c.registry }
func (c *Controller) Ledger() *ledger.Ledger    { return c.ledger }
func (c *Controller) Deck() *deck.Deck          { return c.deck }
func (c *Controller) State() State              { return c.engine.State() }
func (c *Controller) Current() *ledger.Player   { return c.engine.Current() }
func (c *Controller) Turn() int                 { return c.engine.Turn() }
func (c *Controller) GameOver() bool            { return c.engine.State() == StateGameOver }

// Observe registers an observer for every future event.
func (c *Controller) Observe(o Observer) { c.engine.Observe(o) }

func (c *Controller) preRoll() error {
	if s := c.engine.State(); s != StatePreRoll {
		return gameerr.Newf(gameerr.CodeInvalidState, "action not allowed in state %s", s)
	}
	return nil
}

// Capabilities lists what the current player may do right now.
func (c *Controller) Capabilities() []Action {
	actions := []Action{ActionViewInfo}
	if c.preRoll() != nil {
		return actions
	}
	p := c.Current()
	if c.canTrade(p) {
		actions = append(actions, ActionTrade)
	}
	if len(c.registry.Developable(p.Number())) > 0 {
		actions = append(actions, ActionDevelop)
	}
	if len(c.registry.Developed(p.Number())) > 0 {
		actions = append(actions, ActionSellRestaurant)
	}
	if len(c.registry.Pawnable(p.Number())) > 0 {
		actions = append(actions, ActionPawn)
	}
	if len(c.registry.Pawned(p.Number())) > 0 {
		actions = append(actions, ActionUnpawn)
	}
	return append(actions, ActionDropOut, ActionEndGame, ActionTakeTurn)
}

func (c *Controller) canTrade(p *ledger.Player) bool {
	if trade.HasTradeable(c.registry, p) {
		return true
	}
	for _, other := range c.ledger.OthersExcluding(p) {
		if trade.HasTradeable(c.registry, other) {
			return true
		}
	}
	return false
}

// TakeTurn plays the current player's turn.
func (c *Controller) TakeTurn() (TurnReport, error) {
	return c.engine.TakeTurn()
}

// AddRestaurant develops a street of the current player.
func (c *Controller) AddRestaurant(pos int) error {
	if err := c.preRoll(); err != nil {
		return err
	}
	return c.engine.addRestaurant(c.Current(), pos)
}

// SellRestaurant sells one restaurant of a street back to the bank.
func (c *Controller) SellRestaurant(pos int) error {
	if err := c.preRoll(); err != nil {
		return err
	}
	return c.engine.sellRestaurant(c.Current(), pos)
}

// Pawn pawns a property of the current player.
func (c *Controller) Pawn(pos int) error {
	if err := c.preRoll(); err != nil {
		return err
	}
	return c.engine.pawn(c.Current(), pos)
}

// Unpawn redeems a pawned property of the current player.
func (c *Controller) Unpawn(pos int) error {
	if err := c.preRoll(); err != nil {
		return err
	}
	return c.engine.unpawn(c.Current(), pos)
}

// BeginTrade opens a negotiation for the current player. The caller drives
// it to StageResponse and hands it back through SettleTrade.
func (c *Controller) BeginTrade() (*trade.Negotiation, error) {
	if err := c.preRoll(); err != nil {
		return nil, err
	}
	if !c.canTrade(c.Current()) {
		return nil, gameerr.New(gameerr.CodeNothingToTrade, "nobody has anything to trade besides money")
	}
	return trade.New(c.registry, c.ledger, c.Current(), false), nil
}

// SettleTrade applies the counterpart's answer to a confirmed negotiation.
func (c *Controller) SettleTrade(n *trade.Negotiation, accepted bool) (trade.Result, error) {
	if err := c.preRoll(); err != nil {
		return trade.Result{}, err
	}
	if n.Initiator() != c.Current() {
		return trade.Result{}, gameerr.New(gameerr.CodeInvalidState, "negotiation belongs to another player")
	}
	return c.engine.settleTrade(n, accepted)
}

// DropOut eliminates the current player to the bank and hands over.
func (c *Controller) DropOut() error {
	if err := c.preRoll(); err != nil {
		return err
	}
	p := c.Current()
	c.engine.eliminate(p, nil)
	if c.ledger.InGameCount() <= 1 {
		c.engine.finish()
		return nil
	}
	c.engine.handOff(p)
	return nil
}

// EndGame stops the game; the richest player by net worth wins.
func (c *Controller) EndGame() error {
	if err := c.preRoll(); err != nil {
		return err
	}
	c.endedEarly = true
	c.engine.state = StateGameOver
	c.engine.emit(Event{Kind: EventGameOver, Player: c.Standings()[0].Number})
	return nil
}

// Winner returns the winning player once the game is over.
func (c *Controller) Winner() (*ledger.Player, error) {
	if !c.GameOver() {
		return nil, gameerr.New(gameerr.CodeInvalidState, "game is still running")
	}
	if c.endedEarly {
		return c.ledger.ByNumber(c.Standings()[0].Number)
	}
	return c.ledger.Winner()
}

// NetWorth is money plus the value of everything p owns.
func (c *Controller) NetWorth(p *ledger.Player) int {
	return p.Money() + c.registry.Worth(p.Number())
}

// Standings ranks players still in the game by net worth, then the
// eliminated ones.
func (c *Controller) Standings() []models.Standing {
	var out []models.Standing
	for _, p := range c.ledger.All() {
		out = append(out, models.Standing{
			Number:   p.Number(),
			Username: p.Name(),
			NetWorth: c.NetWorth(p),
			InGame:   p.InGame(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].InGame != out[j].InGame {
			return out[i].InGame
		}
		return out[i].NetWorth > out[j].NetWorth
	})
	return out
}

// Snapshot renders the whole table for an adapter.
func (c *Controller) Snapshot(id string) models.GameView {
	view := models.GameView{
		Id:      id,
		State:   string(c.State()),
		Turn:    c.Turn(),
		Current: c.Current().Number(),
	}
	for _, a := range c.Capabilities() {
		view.Actions = append(view.Actions, string(a))
	}
	for _, p := range c.ledger.All() {
		dto := models.PlayerDto{
			Number:        p.Number(),
			Username:      p.Name(),
			Balance:       p.Money(),
			Pos:           p.Position(),
			InGame:        p.InGame(),
			Vacation:      p.OnVacation(),
			VacationTurns: p.VacationTurns(),
			Cards:         p.VacationCards(),
			Properties:    []int{},
		}
		for _, prop := range c.registry.OwnedBy(p.Number()) {
			dto.Properties = append(dto.Properties, prop.Position())
		}
		view.Players = append(view.Players, dto)
	}
	for _, prop := range c.registry.Properties() {
		dto := models.PropertyDto{
			Name:      prop.Name(),
			Type:      prop.Kind().String(),
			Posistion: prop.Position(),
			Owner:     prop.Owner(),
			Pawned:    prop.Pawned(),
			Price:     prop.PurchasePrice(),
		}
		switch v := prop.(type) {
		case *board.Street:
			dto.Restaurants = v.Restaurants()
			dto.Fee = c.registry.StreetFee(v)
		case *board.SuperStore:
			// per point of the visitor's roll
			dto.Fee, _ = c.registry.SuperStoreFee(v, 1)
		case *board.GolfClub:
			dto.Fee = c.registry.GolfClubFee(v)
		}
		view.Properties = append(view.Properties, dto)
	}
	return view
}
