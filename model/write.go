package model

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"

	"github.com/viant/lexvec/tokenizer"
	"github.com/viant/lexvec/vector"
)

// Spec describes a model to be written to a database. Rules may be nil, in
// which case no rule rows are written and loading the model selects the
// default table.
type Spec struct {
	Name    string
	Dim     int
	Vectors map[string][]float32
	Rules   *tokenizer.Rules
}

// Write packages a model into the provided database. It ensures the schema
// and performs all inserts in a single transaction; rows are written in
// deterministic (sorted) order so identical specs produce identical files.
func Write(ctx context.Context, db *sql.DB, spec *Spec) error {
	if db == nil {
		return fmt.Errorf("model: db is nil")
	}
	if spec == nil {
		return fmt.Errorf("model: spec is nil")
	}
	if spec.Dim <= 0 {
		return fmt.Errorf("model: spec dim must be positive, got %d", spec.Dim)
	}
	for text, vec := range spec.Vectors {
		if len(vec) != spec.Dim {
			return fmt.Errorf("model: vector for %q has dim %d, spec dim %d", text, len(vec), spec.Dim)
		}
	}
	if err := EnsureSchema(db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO model_meta(key, value) VALUES(?, ?), (?, ?)`,
		metaName, spec.Name, metaDim, strconv.Itoa(spec.Dim)); err != nil {
		return err
	}

	if err := writeLexemes(ctx, tx, spec); err != nil {
		return err
	}
	if spec.Rules != nil {
		if err := writeRules(ctx, tx, spec.Rules); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func writeLexemes(ctx context.Context, tx *sql.Tx, spec *Spec) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO lexemes(text, vector) VALUES(?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	texts := make([]string, 0, len(spec.Vectors))
	for text := range spec.Vectors {
		texts = append(texts, text)
	}
	sort.Strings(texts)
	for _, text := range texts {
		blob, err := vector.EncodeEmbedding(spec.Vectors[text])
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, text, blob); err != nil {
			return err
		}
	}
	return nil
}

func writeRules(ctx context.Context, tx *sql.Tx, rules *tokenizer.Rules) error {
	specials := make([]string, 0, len(rules.Specials))
	for chunk := range rules.Specials {
		specials = append(specials, chunk)
	}
	sort.Strings(specials)
	for _, chunk := range specials {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO special_cases(chunk) VALUES(?)`, chunk); err != nil {
			return err
		}
	}
	for ord, piece := range rules.Prefixes {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO prefixes(ord, piece) VALUES(?, ?)`, ord, piece); err != nil {
			return err
		}
	}
	for ord, piece := range rules.Suffixes {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO suffixes(ord, piece) VALUES(?, ?)`, ord, piece); err != nil {
			return err
		}
	}
	return nil
}
