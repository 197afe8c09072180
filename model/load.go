package model

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"

	"github.com/viant/lexvec/engine"
	"github.com/viant/lexvec/lexicon"
	"github.com/viant/lexvec/tokenizer"
	"github.com/viant/lexvec/vector"
)

// Load opens the model database at path and reads it fully into memory. A
// missing or unopenable path yields ErrNotFound; structural inconsistencies
// yield ErrCorrupt. The database is closed before returning; the loaded
// Model has no remaining connection to it.
func Load(ctx context.Context, path string) (*Model, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	db, err := engine.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	defer db.Close()
	return LoadDB(ctx, db)
}

// LoadDB reads a model from an already-open database handle. Callers that
// receive a handle from elsewhere (an in-memory build, a shared pool) use
// this directly; Load delegates here.
func LoadDB(ctx context.Context, db *sql.DB) (*Model, error) {
	if db == nil {
		return nil, fmt.Errorf("model: db is nil")
	}

	name, dim, err := readMeta(ctx, db)
	if err != nil {
		return nil, err
	}
	lex, err := readLexemes(ctx, db, dim)
	if err != nil {
		return nil, err
	}
	rules, err := readRules(ctx, db)
	if err != nil {
		return nil, err
	}
	return &Model{Name: name, Dim: dim, Lexicon: lex, Rules: rules}, nil
}

func readMeta(ctx context.Context, db *sql.DB) (name string, dim int, err error) {
	rows, err := db.QueryContext(ctx, `SELECT key, value FROM model_meta`)
	if err != nil {
		return "", 0, fmt.Errorf("%w: reading metadata: %v", ErrCorrupt, err)
	}
	defer rows.Close()

	meta := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return "", 0, fmt.Errorf("%w: reading metadata: %v", ErrCorrupt, err)
		}
		meta[k] = v
	}
	if err := rows.Err(); err != nil {
		return "", 0, fmt.Errorf("%w: reading metadata: %v", ErrCorrupt, err)
	}

	dimStr, ok := meta[metaDim]
	if !ok {
		return "", 0, fmt.Errorf("%w: missing %q metadata", ErrCorrupt, metaDim)
	}
	dim, err = strconv.Atoi(dimStr)
	if err != nil || dim <= 0 {
		return "", 0, fmt.Errorf("%w: invalid dimensionality %q", ErrCorrupt, dimStr)
	}
	return meta[metaName], dim, nil
}

func readLexemes(ctx context.Context, db *sql.DB, dim int) (*lexicon.Lexicon, error) {
	rows, err := db.QueryContext(ctx, `SELECT text, vector FROM lexemes`)
	if err != nil {
		return nil, fmt.Errorf("%w: reading lexemes: %v", ErrCorrupt, err)
	}
	defer rows.Close()

	lex := lexicon.New(dim)
	for rows.Next() {
		var text string
		var blob []byte
		if err := rows.Scan(&text, &blob); err != nil {
			return nil, fmt.Errorf("%w: reading lexemes: %v", ErrCorrupt, err)
		}
		vec, err := vector.DecodeEmbedding(blob)
		if err != nil {
			return nil, fmt.Errorf("%w: lexeme %q: %v", ErrCorrupt, text, err)
		}
		if len(vec) != dim {
			return nil, fmt.Errorf("%w: lexeme %q has dim %d, model dim %d", ErrCorrupt, text, len(vec), dim)
		}
		if err := lex.Add(text, vec); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading lexemes: %v", ErrCorrupt, err)
	}
	return lex, nil
}

func readRules(ctx context.Context, db *sql.DB) (*tokenizer.Rules, error) {
	rules := &tokenizer.Rules{Specials: map[string]bool{}}

	rows, err := db.QueryContext(ctx, `SELECT chunk FROM special_cases ORDER BY chunk`)
	if err != nil {
		return nil, fmt.Errorf("%w: reading special cases: %v", ErrCorrupt, err)
	}
	for rows.Next() {
		var chunk string
		if err := rows.Scan(&chunk); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: reading special cases: %v", ErrCorrupt, err)
		}
		rules.Specials[chunk] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("%w: reading special cases: %v", ErrCorrupt, err)
	}
	rows.Close()

	if rules.Prefixes, err = readPieces(ctx, db, `SELECT piece FROM prefixes ORDER BY ord`); err != nil {
		return nil, err
	}
	if rules.Suffixes, err = readPieces(ctx, db, `SELECT piece FROM suffixes ORDER BY ord`); err != nil {
		return nil, err
	}

	// A model packaged without any rule rows uses the built-in defaults.
	if len(rules.Specials) == 0 && len(rules.Prefixes) == 0 && len(rules.Suffixes) == 0 {
		return tokenizer.DefaultRules(), nil
	}
	return rules, nil
}

func readPieces(ctx context.Context, db *sql.DB, query string) ([]string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: reading rules: %v", ErrCorrupt, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var piece string
		if err := rows.Scan(&piece); err != nil {
			return nil, fmt.Errorf("%w: reading rules: %v", ErrCorrupt, err)
		}
		out = append(out, piece)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading rules: %v", ErrCorrupt, err)
	}
	return out, nil
}
