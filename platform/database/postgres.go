package database

import (
	"github.com/DedS3t/monopoly-engine/platform/config"
	"github.com/go-pg/pg/v10"
)

// Enabled reports whether cfg names a database to record games in.
func Enabled(cfg config.Config) bool {
	return cfg.DBAddr != ""
}

func PostgreSQLConnection(cfg config.Config) *pg.DB {
	return pg.Connect(&pg.Options{
		User:     cfg.DBUser,
		Addr:     cfg.DBAddr,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
	})
}
