package queries

import (
	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

// CreateSchema creates the games table when it is missing.
func CreateSchema(db *pg.DB) error {
	return db.Model((*models.Game)(nil)).CreateTable(&orm.CreateTableOptions{
		IfNotExists: true,
	})
}

func VerifyGame(id string, db *pg.DB) bool {
	game := &models.Game{Id: id}
	err := db.Model(game).WherePK().Select()
	return err == nil
}

// GetGame loads one record.
func GetGame(id string, db *pg.DB) (models.Game, error) {
	game := models.Game{Id: id}
	err := db.Model(&game).WherePK().Select()
	return game, err
}

// ListGames returns the recorded games, newest first. An empty status lists
// every game.
func ListGames(status string, db *pg.DB) ([]models.Game, error) {
	var games []models.Game
	q := db.Model(&games).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Select()
	return games, err
}

// SaveGame inserts a record or updates everything but its creation time.
func SaveGame(game models.Game, db *pg.DB) error {
	_, err := db.Model(&game).
		OnConflict("(id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("status = EXCLUDED.status").
		Set("winner = EXCLUDED.winner").
		Set("turns = EXCLUDED.turns").
		Set("finished_at = EXCLUDED.finished_at").
		Insert()
	return err
}

func DeleteGame(id string, db *pg.DB) error {
	game := new(models.Game)
	_, err := db.Model(game).Where("id = ?", id).Delete()
	return err
}
