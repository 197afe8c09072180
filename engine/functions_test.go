package engine

import (
	"encoding/binary"
	"math"
	"testing"
)

func encodeTestEmbedding(vec []float32) []byte {
	b := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

func TestVectorFunctions_SQL(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	if err := RegisterVectorFunctions(db); err != nil {
		t.Fatalf("RegisterVectorFunctions failed: %v", err)
	}

	a := encodeTestEmbedding([]float32{1, 0})
	b := encodeTestEmbedding([]float32{1, 0})
	c := encodeTestEmbedding([]float32{0, 1})

	var sim float64
	if err := db.QueryRow(`SELECT lex_cosine(?, ?)`, a, b).Scan(&sim); err != nil {
		t.Fatalf("lex_cosine query failed: %v", err)
	}
	if sim != 1 {
		t.Errorf("lex_cosine(a,a) = %v, want 1", sim)
	}
	if err := db.QueryRow(`SELECT lex_cosine(?, ?)`, a, c).Scan(&sim); err != nil {
		t.Fatalf("lex_cosine query failed: %v", err)
	}
	if sim != 0 {
		t.Errorf("lex_cosine(a,c) = %v, want 0", sim)
	}

	var dist float64
	if err := db.QueryRow(`SELECT lex_l2(?, ?)`, encodeTestEmbedding([]float32{0, 0}), encodeTestEmbedding([]float32{3, 4})).Scan(&dist); err != nil {
		t.Fatalf("lex_l2 query failed: %v", err)
	}
	if dist != 5 {
		t.Errorf("lex_l2 = %v, want 5", dist)
	}
}

func TestVectorFunctions_NullArgument(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	if err := RegisterVectorFunctions(db); err != nil {
		t.Fatalf("RegisterVectorFunctions failed: %v", err)
	}

	var sim *float64
	if err := db.QueryRow(`SELECT lex_cosine(NULL, ?)`, encodeTestEmbedding([]float32{1, 0})).Scan(&sim); err != nil {
		t.Fatalf("lex_cosine(NULL, ...) failed: %v", err)
	}
	if sim != nil {
		t.Errorf("lex_cosine(NULL, ...) = %v, want NULL", *sim)
	}
}
