package model

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/viant/lexvec/engine"
	"github.com/viant/lexvec/tokenizer"
)

func openTestDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := engine.Open(dsn)
	if err != nil {
		t.Fatalf("engine.Open(%s) failed: %v", dsn, err)
	}
	// A single connection keeps :memory: databases stable across statements.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func testSpec() *Spec {
	return &Spec{
		Name: "en_test",
		Dim:  3,
		Vectors: map[string][]float32{
			"apple":  {1, 0, 0},
			"orange": {0.9, 0.1, 0},
			"sky":    {0, 0, 1},
		},
	}
}

func TestWriteLoadDB_RoundTrip(t *testing.T) {
	db := openTestDB(t, ":memory:")
	ctx := context.Background()

	if err := Write(ctx, db, testSpec()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	m, err := LoadDB(ctx, db)
	if err != nil {
		t.Fatalf("LoadDB failed: %v", err)
	}
	if m.Name != "en_test" || m.Dim != 3 {
		t.Fatalf("loaded model = (%q, %d), want (en_test, 3)", m.Name, m.Dim)
	}
	if m.Lexicon.Len() != 3 {
		t.Fatalf("lexicon size = %d, want 3", m.Lexicon.Len())
	}

	lex := m.Lexicon.Lookup("apple")
	if !lex.InVocab || lex.Vector[0] != 1 {
		t.Errorf("Lookup(apple) = %+v, want in-vocab [1 0 0]", lex)
	}
	if miss := m.Lexicon.Lookup("pear"); miss.InVocab {
		t.Error("Lookup(pear).InVocab = true, want false")
	}

	// No rule rows packaged: defaults are selected.
	if len(m.Rules.Suffixes) == 0 || !m.Rules.Specials["e.g."] {
		t.Errorf("expected default rules, got %+v", m.Rules)
	}
}

func TestWriteLoad_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "en_test.lexvec")

	db := openTestDB(t, path)
	spec := testSpec()
	spec.Rules = &tokenizer.Rules{
		Specials: map[string]bool{"o.k.": true},
		Prefixes: []string{"("},
		Suffixes: []string{"...", "."},
	}
	if err := Write(ctx, db, spec); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	db.Close()

	m, err := Load(ctx, path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Name != "en_test" {
		t.Errorf("Name = %q, want en_test", m.Name)
	}
	if !m.Rules.Specials["o.k."] {
		t.Error("packaged special case o.k. missing after load")
	}
	if len(m.Rules.Suffixes) != 2 || m.Rules.Suffixes[0] != "..." {
		t.Errorf("Suffixes = %v, want [... .] in packaged order", m.Rules.Suffixes)
	}
	if len(m.Rules.Prefixes) != 1 || m.Rules.Prefixes[0] != "(" {
		t.Errorf("Prefixes = %v, want [(]", m.Rules.Prefixes)
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.lexvec"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load of missing path: err = %v, want ErrNotFound", err)
	}
}

func TestLoadDB_CorruptDim(t *testing.T) {
	db := openTestDB(t, ":memory:")
	ctx := context.Background()

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO model_meta(key, value) VALUES('name', 'bad'), ('dim', '3')`); err != nil {
		t.Fatalf("seeding meta failed: %v", err)
	}
	// 8 bytes = a 2-dim vector in a 3-dim model.
	if _, err := db.Exec(`INSERT INTO lexemes(text, vector) VALUES('short', ?)`, make([]byte, 8)); err != nil {
		t.Fatalf("seeding lexeme failed: %v", err)
	}

	if _, err := LoadDB(ctx, db); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("LoadDB with inconsistent dims: err = %v, want ErrCorrupt", err)
	}
}

func TestLoadDB_MissingMeta(t *testing.T) {
	db := openTestDB(t, ":memory:")
	if err := EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	if _, err := LoadDB(context.Background(), db); !errors.Is(err, ErrCorrupt) {
		t.Fatal("LoadDB without dim metadata should report ErrCorrupt")
	}
}

func TestQuerySimilar(t *testing.T) {
	db := openTestDB(t, ":memory:")
	ctx := context.Background()

	if err := Write(ctx, db, testSpec()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	matches, err := QuerySimilar(ctx, db, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("QuerySimilar failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("QuerySimilar returned %d matches, want 2", len(matches))
	}
	if matches[0].Text != "apple" || matches[1].Text != "orange" {
		t.Errorf("match order = [%s %s], want [apple orange]", matches[0].Text, matches[1].Text)
	}
	if matches[0].Score < matches[1].Score {
		t.Errorf("scores not descending: %v", matches)
	}
}
