// Package language provides the pipeline controller that turns raw text
// into owner-tagged documents. A Language is loaded once from a model file,
// is immutable afterwards, and carries the only configuration in the
// pipeline: which lexicon and segmentation rules are active. Process calls
// are stateless and safe to run concurrently.
package language
