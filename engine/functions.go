package engine

import (
	"database/sql"
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	sqlite "modernc.org/sqlite"
)

var registerOnce sync.Once

// RegisterVectorFunctions registers lex_cosine and lex_l2 with the driver so
// they are available on new connections opened after this call. Both take
// two embedding BLOBs (little-endian float32 sequences) and return a REAL.
// Open performs the registration itself; this entry point exists for callers
// that open handles through database/sql directly. Existing open connections
// will not see new functions.
func RegisterVectorFunctions(_ *sql.DB) error {
	registerFunctions()
	return nil
}

func registerFunctions() {
	registerOnce.Do(func() {
		// The driver rejects duplicate registration; ignoring the errors
		// keeps this idempotent across callers.
		_ = sqlite.RegisterDeterministicScalarFunction("lex_cosine", 2, lexCosineImpl)
		_ = sqlite.RegisterDeterministicScalarFunction("lex_l2", 2, lexL2Impl)
	})
}

func asEmbedding(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return decodeEmbedding(v)
	default:
		return nil, fmt.Errorf("engine: unsupported argument type %T for embedding; want BLOB", arg)
	}
}

func lexCosineImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, err := twoEmbeddings("lex_cosine", args)
	if err != nil || a == nil || b == nil {
		return nil, err
	}
	sim, ok, err := cosine(a, b)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Zero-magnitude vector: similarity is undefined, report NULL so
		// similarity queries can skip the row.
		return nil, nil
	}
	return sim, nil
}

func lexL2Impl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, err := twoEmbeddings("lex_l2", args)
	if err != nil || a == nil || b == nil {
		return nil, err
	}
	d, err := l2(a, b)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func twoEmbeddings(fn string, args []driver.Value) ([]float32, []float32, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("%s: expected 2 arguments, got %d", fn, len(args))
	}
	a, err := asEmbedding(args[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := asEmbedding(args[1])
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// Local minimal helpers; the vector package keeps the canonical codec and
// distance implementations, duplicated here so vector tests can import
// engine without a cycle.
func decodeEmbedding(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("engine: invalid embedding blob length %d", len(b))
	}
	n := len(b) / 4
	v := make([]float32, n)
	for i := 0; i < n; i++ {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}

func cosine(a, b []float32) (sim float64, ok bool, err error) {
	if len(a) != len(b) {
		return 0, false, fmt.Errorf("engine: cosine dim mismatch %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, false, fmt.Errorf("engine: cosine on empty vectors")
	}
	var dot, na2, nb2 float64
	for i := range a {
		va := float64(a[i])
		vb := float64(b[i])
		dot += va * vb
		na2 += va * va
		nb2 += vb * vb
	}
	if na2 == 0 || nb2 == 0 {
		return 0, false, nil
	}
	return dot / (math.Sqrt(na2) * math.Sqrt(nb2)), true, nil
}

func l2(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("engine: L2 dim mismatch %d vs %d", len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum), nil
}
