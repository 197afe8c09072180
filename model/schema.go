package model

import "database/sql"

const modelSchema = `
CREATE TABLE IF NOT EXISTS model_meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS lexemes (
    text   TEXT PRIMARY KEY,
    vector BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS special_cases (
    chunk TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS prefixes (
    ord   INTEGER PRIMARY KEY,
    piece TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS suffixes (
    ord   INTEGER PRIMARY KEY,
    piece TEXT NOT NULL
);
`

// Metadata keys stored in model_meta.
const (
	metaName = "name"
	metaDim  = "dim"
)

// EnsureSchema creates the model tables in the provided database if they do
// not already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(modelSchema)
	return err
}
