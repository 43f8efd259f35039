package logging

import (
	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/sirupsen/logrus"
)

// EventLogger writes every engine event of a table as one log entry.
func EventLogger(table string) engine.Observer {
	log := logrus.WithField("table", table)
	return engine.ObserverFunc(func(e engine.Event) {
		entry := log.WithFields(logrus.Fields{
			"turn":   e.Turn,
			"player": e.Player,
		})
		if e.Other != 0 {
			entry = entry.WithField("other", e.Other)
		}
		if e.Amount != 0 {
			entry = entry.WithField("amount", e.Amount)
		}
		if e.Position != 0 {
			entry = entry.WithField("position", e.Position)
		}
		if e.Message != "" {
			entry = entry.WithField("message", e.Message)
		}
		if e.Kind == engine.EventRolled || e.Kind == engine.EventMoved {
			entry.Debug(string(e.Kind))
			return
		}
		entry.Info(string(e.Kind))
	})
}
