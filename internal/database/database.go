package database

import (
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// Connect opens a SQLite database using the provided DSN.
func Connect(dsn string) *sqlx.DB {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	// SQLite allows a single writer; a one-connection pool serializes
	// requests instead of failing them with SQLITE_BUSY, and keeps the
	// foreign_keys pragma applied to every statement.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		log.Fatal().Err(err).Msg("failed to enable foreign keys")
	}
	return db
}
