// Package table runs each game on its own worker goroutine so that
// concurrent requests reach the engine one at a time.
package table

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/pkg/gameerr"
	"github.com/DedS3t/monopoly-engine/platform/board"
	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/DedS3t/monopoly-engine/platform/trade"
	"github.com/sirupsen/logrus"
)

var (
	ErrClosed   = errors.New("table closed")
	ErrNotFound = errors.New("table not found")
)

// Step is where a command stopped: either a prompt waiting for an answer
// or the command's result.
type Step struct {
	Prompt *Prompt     `json:"prompt,omitempty"`
	Result interface{} `json:"result,omitempty"`
	Err    error       `json:"-"`
	View   View        `json:"view"`
}

// View is the table as last seen by the worker.
type View struct {
	models.GameView
	Name   string             `json:"name"`
	Winner string             `json:"winner,omitempty"`
	Prompt *Prompt            `json:"prompt,omitempty"`
	Last   *engine.TurnReport `json:"last_turn,omitempty"`
}

// TradeOutcome is the result of a pre-roll trade.
type TradeOutcome struct {
	Accepted bool           `json:"accepted"`
	Refunds  []board.Refund `json:"refunds,omitempty"`
}

type command struct {
	run func() (interface{}, error)
}

// Table owns one game controller. Only the worker goroutine touches it.
type Table struct {
	ID   string
	Name string

	ctx     context.Context
	ctrl    *engine.Controller
	decider decider

	cmds    chan command
	answers chan Answer
	steps   chan Step
	done    chan struct{}
	once    sync.Once

	// busy serializes callers so each step reaches the caller that caused it
	busy sync.Mutex

	mu      sync.RWMutex
	view    View
	pending *Prompt
	seq     int

	onGameOver func(*Table)
}

// New creates a table and starts its worker. cfg.Decider is replaced by the
// table's prompt bridge.
func New(ctx context.Context, id, name string, cfg engine.Config) (*Table, error) {
	t := &Table{
		ID:      id,
		Name:    name,
		ctx:     ctx,
		cmds:    make(chan command),
		answers: make(chan Answer),
		steps:   make(chan Step),
		done:    make(chan struct{}),
	}
	t.decider = decider{t: t}
	cfg.Decider = t.decider

	ctrl, err := engine.NewGame(cfg)
	if err != nil {
		return nil, err
	}
	t.ctrl = ctrl
	t.refresh()
	go t.run()
	return t, nil
}

// Observe registers an engine observer. Call it before the first command.
func (t *Table) Observe(o engine.Observer) {
	t.ctrl.Observe(o)
}

// OnGameOver registers a callback run on the worker once the game ends.
func (t *Table) OnGameOver(fn func(*Table)) {
	t.onGameOver = fn
}

func (t *Table) run() {
	defer t.Close()
	for {
		select {
		case <-t.ctx.Done():
			return
		case <-t.done:
			return
		case cmd := <-t.cmds:
			wasOver := t.ctrl.GameOver()
			v, err := t.exec(cmd)
			t.refresh()
			if !wasOver && t.ctrl.GameOver() && t.onGameOver != nil {
				t.onGameOver(t)
			}
			t.send(Step{Result: v, Err: err})
		}
	}
}

// exec runs a command. A panic means the engine state can no longer be
// trusted, so the table is closed.
func (t *Table) exec(cmd command) (v interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{"table": t.ID, "panic": r}).Error("engine failure, closing table")
			err = fmt.Errorf("engine failure: %v", r)
			t.Close()
		}
	}()
	return cmd.run()
}

func (t *Table) send(s Step) {
	s.View = t.View()
	select {
	case t.steps <- s:
	case <-t.done:
	case <-t.ctx.Done():
	}
}

// ask publishes a prompt and blocks the worker until it is answered. A
// closed table or a cancelled context answers with the zero Answer.
func (t *Table) ask(p Prompt) Answer {
	t.mu.Lock()
	t.seq++
	p.ID = t.seq
	t.pending = &p
	t.mu.Unlock()
	t.refresh()

	t.send(Step{Prompt: &p})
	select {
	case a := <-t.answers:
		t.mu.Lock()
		t.pending = nil
		t.mu.Unlock()
		return a
	case <-t.done:
		return Answer{}
	case <-t.ctx.Done():
		return Answer{}
	}
}

func (t *Table) refresh() {
	view := t.ctrl.Snapshot(t.ID)
	winner := ""
	if w, err := t.ctrl.Winner(); err == nil {
		winner = w.Name()
	}
	t.mu.Lock()
	t.view.GameView = view
	t.view.Name = t.Name
	t.view.Winner = winner
	t.view.Prompt = t.pending
	t.mu.Unlock()
}

// View returns the last published state.
func (t *Table) View() View {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.view
}

// Pending returns the prompt the table waits on, if any.
func (t *Table) Pending() *Prompt {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pending
}

// Close stops the worker. Blocked prompts resolve with the zero Answer.
func (t *Table) Close() {
	t.once.Do(func() { close(t.done) })
}

// Closed reports whether the worker stopped.
func (t *Table) Closed() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// await returns the next step of the running command.
func (t *Table) await() (Step, error) {
	select {
	case s := <-t.steps:
		return s, s.Err
	case <-t.done:
		return Step{View: t.View()}, ErrClosed
	}
}

func (t *Table) do(ctx context.Context, fn func() (interface{}, error)) (Step, error) {
	t.busy.Lock()
	defer t.busy.Unlock()
	if t.Closed() {
		return Step{View: t.View()}, ErrClosed
	}
	if t.Pending() != nil {
		return Step{View: t.View()}, gameerr.New(gameerr.CodeInvalidState, "waiting for an answer to the current prompt")
	}
	select {
	case t.cmds <- command{run: fn}:
	case <-ctx.Done():
		return Step{}, ctx.Err()
	case <-t.done:
		return Step{}, ErrClosed
	}
	return t.await()
}

// Answer resolves the pending prompt and returns the next step.
func (t *Table) Answer(ctx context.Context, a Answer) (Step, error) {
	t.busy.Lock()
	defer t.busy.Unlock()
	if t.Closed() {
		return Step{View: t.View()}, ErrClosed
	}
	p := t.Pending()
	if p == nil {
		return Step{View: t.View()}, gameerr.New(gameerr.CodeInvalidState, "no prompt is pending")
	}
	if a.Prompt != p.ID {
		return Step{View: t.View()}, gameerr.Newf(gameerr.CodeInvalidChoice, "prompt %d is pending, not %d", p.ID, a.Prompt)
	}
	select {
	case t.answers <- a:
	case <-ctx.Done():
		return Step{}, ctx.Err()
	case <-t.done:
		return Step{}, ErrClosed
	}
	return t.await()
}

// TakeTurn plays the current player's turn.
func (t *Table) TakeTurn(ctx context.Context) (Step, error) {
	return t.do(ctx, func() (interface{}, error) {
		r, err := t.ctrl.TakeTurn()
		if err != nil {
			return nil, err
		}
		t.mu.Lock()
		t.view.Last = &r
		t.mu.Unlock()
		return r, nil
	})
}

// AddRestaurant develops a street of the current player.
func (t *Table) AddRestaurant(ctx context.Context, pos int) (Step, error) {
	return t.do(ctx, func() (interface{}, error) { return nil, t.ctrl.AddRestaurant(pos) })
}

// SellRestaurant sells a restaurant of the current player.
func (t *Table) SellRestaurant(ctx context.Context, pos int) (Step, error) {
	return t.do(ctx, func() (interface{}, error) { return nil, t.ctrl.SellRestaurant(pos) })
}

// Pawn pawns a property of the current player.
func (t *Table) Pawn(ctx context.Context, pos int) (Step, error) {
	return t.do(ctx, func() (interface{}, error) { return nil, t.ctrl.Pawn(pos) })
}

// Unpawn redeems a property of the current player.
func (t *Table) Unpawn(ctx context.Context, pos int) (Step, error) {
	return t.do(ctx, func() (interface{}, error) { return nil, t.ctrl.Unpawn(pos) })
}

// DropOut removes the current player.
func (t *Table) DropOut(ctx context.Context) (Step, error) {
	return t.do(ctx, func() (interface{}, error) { return nil, t.ctrl.DropOut() })
}

// EndGame stops the game and returns the standings.
func (t *Table) EndGame(ctx context.Context) (Step, error) {
	return t.do(ctx, func() (interface{}, error) {
		if err := t.ctrl.EndGame(); err != nil {
			return nil, err
		}
		return t.ctrl.Standings(), nil
	})
}

// Trade offers a trade from the current player. The counterpart answers a
// trade-response prompt.
func (t *Table) Trade(ctx context.Context, counterpart int, wanted, offered trade.Bundle) (Step, error) {
	return t.do(ctx, func() (interface{}, error) {
		n, err := t.ctrl.BeginTrade()
		if err != nil {
			return nil, err
		}
		if err := n.Propose(counterpart, wanted, offered); err != nil {
			return nil, err
		}
		accepted := t.decider.RespondToTrade(n.Counterpart(), n.Offer())
		res, err := t.ctrl.SettleTrade(n, accepted)
		if err != nil {
			return nil, err
		}
		return TradeOutcome{Accepted: accepted, Refunds: res.Refunds}, nil
	})
}

// Standings ranks the players by net worth.
func (t *Table) Standings(ctx context.Context) ([]models.Standing, error) {
	s, err := t.do(ctx, func() (interface{}, error) { return t.ctrl.Standings(), nil })
	if err != nil {
		return nil, err
	}
	return s.Result.([]models.Standing), nil
}

// Record describes the table for persistence.
func (t *Table) Record() models.Game {
	v := t.View()
	g := models.Game{Id: t.ID, Name: t.Name, Status: models.GameStatusInProgress, Turns: v.Turn}
	if v.State == string(engine.StateGameOver) {
		g.Status = models.GameStatusFinished
		g.Winner = v.Winner
	}
	return g
}
