// Package model reads and writes lexvec model files: SQLite databases that
// carry a model's vocabulary (token text and embedding BLOBs), its metadata
// (name, vector dimensionality), and its segmentation exception rules.
// Loading is a one-time, upfront, cancellable operation; the loaded Model is
// immutable and shared read-only by every document produced from it.
package model
