package db

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"
)

const createHistorySchema = `
	CREATE TABLE IF NOT EXISTS save_history (
		id VARCHAR PRIMARY KEY,
		path VARCHAR NOT NULL,
		filename VARCHAR,
		character_name VARCHAR,
		scene VARCHAR,
		saved_at VARCHAR,
		modified_at TIMESTAMP
	)
`

// Open opens (or creates) the save history database at path and prepares
// its schema.
func Open(path string) (*sql.DB, error) {
	database, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}

	// DuckDB works best with a single connection
	database.SetMaxOpenConns(1)
	database.SetMaxIdleConns(1)

	if _, err := database.Exec(createHistorySchema); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return database, nil
}
