// Package vector holds the numeric embedding utilities shared across this
// module: the BLOB codec used to persist float32 embeddings in SQLite model
// files, and cosine/L2 distance built on the SIMD-accelerated primitives from
// github.com/viant/vec.
package vector
