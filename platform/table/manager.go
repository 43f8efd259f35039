package table

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/engine"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

// Store persists table records.
type Store interface {
	SaveGame(g models.Game) error
}

// ObserverFactory builds an engine observer for a table id.
type ObserverFactory func(table string) engine.Observer

// Manager keeps the running tables by id.
type Manager struct {
	ctx       context.Context
	seed      int64
	store     Store
	observers []ObserverFactory

	mu     sync.RWMutex
	tables map[string]*Table
}

// NewManager creates a manager whose tables stop when ctx is done. A
// non-zero seed makes every table's dice reproducible; store may be nil.
func NewManager(ctx context.Context, seed int64, store Store, observers ...ObserverFactory) *Manager {
	return &Manager{
		ctx:       ctx,
		seed:      seed,
		store:     store,
		observers: observers,
		tables:    make(map[string]*Table),
	}
}

// Create opens a table for the given players.
func (m *Manager) Create(dto models.GameCreateDto) (*Table, error) {
	id := uuid.NewV4().String()
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		name = id[:8]
	}

	cfg := engine.Config{Names: dto.Players, Shuffle: true}
	seed := dto.Seed
	if seed == 0 {
		seed = m.seed
	}
	if seed != 0 {
		cfg.Rand = rand.New(rand.NewSource(seed))
	}

	t, err := New(m.ctx, id, name, cfg)
	if err != nil {
		return nil, err
	}
	for _, factory := range m.observers {
		t.Observe(factory(id))
	}
	t.OnGameOver(m.save)
	m.save(t)

	m.mu.Lock()
	m.tables[id] = t
	m.mu.Unlock()
	logrus.WithFields(logrus.Fields{"table": id, "players": len(dto.Players)}).Info("table created")
	return t, nil
}

func (m *Manager) save(t *Table) {
	if m.store == nil {
		return
	}
	if err := m.store.SaveGame(t.Record()); err != nil {
		logrus.WithError(err).WithField("table", t.ID).Warn("saving game record failed")
	}
}

// Get returns a running table.
func (m *Manager) Get(id string) (*Table, error) {
	m.mu.RLock()
	t, ok := m.tables[id]
	m.mu.RUnlock()
	if !ok || t.Closed() {
		return nil, ErrNotFound
	}
	return t, nil
}

// Exists reports whether a table is running.
func (m *Manager) Exists(id string) bool {
	_, err := m.Get(id)
	return err == nil
}

// Close stops a table and forgets it.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	t, ok := m.tables[id]
	delete(m.tables, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	t.Close()
	return nil
}

// List returns the records of every running table sorted by name.
func (m *Manager) List() []models.Game {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Game, 0, len(m.tables))
	for _, t := range m.tables {
		if !t.Closed() {
			out = append(out, t.Record())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
