package queries

import (
	"testing"
	"time"

	"github.com/DedS3t/monopoly-engine/app/models"
)

func TestStamp(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-time.Hour)

	tests := []struct {
		name     string
		in       models.Game
		created  time.Time
		finished time.Time
	}{
		{
			name:    "in progress",
			in:      models.Game{Status: models.GameStatusInProgress},
			created: now,
		},
		{
			name:     "finished",
			in:       models.Game{Status: models.GameStatusFinished},
			created:  now,
			finished: now,
		},
		{
			name:     "keeps existing times",
			in:       models.Game{Status: models.GameStatusFinished, CreatedAt: earlier, FinishedAt: earlier},
			created:  earlier,
			finished: earlier,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stamp(tt.in, now)
			if !got.CreatedAt.Equal(tt.created) || !got.FinishedAt.Equal(tt.finished) {
				t.Fatalf("stamp() = %v/%v, want %v/%v", got.CreatedAt, got.FinishedAt, tt.created, tt.finished)
			}
		})
	}
}
