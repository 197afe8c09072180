package model

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/viant/lexvec/engine"
	"github.com/viant/lexvec/lexicon"
	"github.com/viant/lexvec/vector"
)

// QuerySimilar ranks the lexemes stored in a model database by cosine
// similarity to the query vector, entirely in SQL via the lex_cosine scalar
// function, and returns up to k matches (all matches when k <= 0). NULL
// scores (zero-magnitude or malformed rows) are excluded.
//
// Handles opened through engine.Open already carry the scalar functions;
// for handles opened elsewhere, registration only affects connections opened
// after engine.RegisterVectorFunctions, which QuerySimilar invokes up front.
func QuerySimilar(ctx context.Context, db *sql.DB, query []float32, k int) ([]lexicon.Match, error) {
	if db == nil {
		return nil, fmt.Errorf("model: db is nil")
	}
	if err := engine.RegisterVectorFunctions(db); err != nil {
		return nil, err
	}
	blob, err := vector.EncodeEmbedding(query)
	if err != nil {
		return nil, err
	}

	base := `SELECT text, lex_cosine(vector, ?) AS score FROM lexemes ORDER BY score DESC, text`
	var rows *sql.Rows
	if k > 0 {
		rows, err = db.QueryContext(ctx, base+` LIMIT ?`, blob, k)
	} else {
		rows, err = db.QueryContext(ctx, base, blob)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []lexicon.Match
	for rows.Next() {
		var text string
		var score sql.NullFloat64
		if err := rows.Scan(&text, &score); err != nil {
			return nil, err
		}
		if !score.Valid {
			continue
		}
		out = append(out, lexicon.Match{Text: text, Hash: lexicon.Hash(text), Score: score.Float64})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
