package queries

import (
	"time"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/go-pg/pg/v10"
)

// Recorder stores table records in postgres.
type Recorder struct {
	db  *pg.DB
	now func() time.Time
}

func NewRecorder(db *pg.DB) *Recorder {
	return &Recorder{db: db, now: time.Now}
}

func (r *Recorder) SaveGame(g models.Game) error {
	return SaveGame(stamp(g, r.now()), r.db)
}

func (r *Recorder) Exists(id string) bool {
	return VerifyGame(id, r.db)
}

func (r *Recorder) Get(id string) (models.Game, error) {
	return GetGame(id, r.db)
}

func (r *Recorder) List(status string) ([]models.Game, error) {
	return ListGames(status, r.db)
}

func (r *Recorder) Delete(id string) error {
	return DeleteGame(id, r.db)
}

// stamp fills the timestamps a record is missing. The creation time only
// survives the first insert.
func stamp(g models.Game, now time.Time) models.Game {
	now = now.UTC()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	if g.Status == models.GameStatusFinished && g.FinishedAt.IsZero() {
		g.FinishedAt = now
	}
	return g
}
