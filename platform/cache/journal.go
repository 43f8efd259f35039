package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/sirupsen/logrus"
)

// Journal appends the events of every table to a redis list keyed by table
// id.
type Journal struct {
	conns Getter
	ttl   time.Duration
}

// NewJournal writes through conns. Lists expire ttl after the last write;
// zero keeps them forever.
func NewJournal(conns Getter, ttl time.Duration) *Journal {
	return &Journal{conns: conns, ttl: ttl}
}

func key(table string) string {
	return fmt.Sprintf("%s.log", table)
}

// Append stores one event.
func (j *Journal) Append(table string, e engine.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	conn := j.conns.Get()
	defer conn.Close()

	if err := RPUSH(key(table), []interface{}{string(data)}, conn); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	if j.ttl > 0 {
		return EXPIRE(key(table), int(j.ttl/time.Second), conn)
	}
	return nil
}

// Events returns every stored event of a table in order.
func (j *Journal) Events(table string) ([]engine.Event, error) {
	conn := j.conns.Get()
	defer conn.Close()

	raw, err := LGET(key(table), conn)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	events := make([]engine.Event, 0, len(raw))
	for _, r := range raw {
		var e engine.Event
		if err := json.Unmarshal(r, &e); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, e)
	}
	return events, nil
}

// Drop removes a table's journal.
func (j *Journal) Drop(table string) error {
	conn := j.conns.Get()
	defer conn.Close()
	return Del(key(table), conn)
}

// Observer returns an engine observer appending to the table's journal.
// Write failures are logged; they never stop the game.
func (j *Journal) Observer(table string) engine.Observer {
	return engine.ObserverFunc(func(e engine.Event) {
		if err := j.Append(table, e); err != nil {
			logrus.WithError(err).WithField("table", table).Warn("journal write failed")
		}
	})
}
