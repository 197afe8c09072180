package engine

import (
	"database/sql"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// Open opens a SQLite database using the modernc.org/sqlite driver. The
// lex_cosine/lex_l2 scalar functions are registered with the driver before
// the handle is created, so they are available on every connection the
// handle opens.
//
// For file-based model databases, pass a path like "./en_core.lexvec". For
// in-memory databases, pass ":memory:".
func Open(dsn string) (*sql.DB, error) {
	registerFunctions()
	return sql.Open("sqlite", dsn)
}
