// Package tokenizer implements rule-based segmentation of raw text into
// ordered token spans. The segmenter first splits on whitespace runs, then
// applies exception rules to each chunk: exact-match special cases are kept
// intact, and leading/trailing punctuation is peeled off recursively with
// longest-match-first priority. Span offsets are Unicode codepoint offsets;
// byte offsets are carried alongside so callers can slice the original
// buffer without copying.
//
// Segmentation is pure and never fails for well-formed input; invalid UTF-8
// is rejected with ErrInvalidEncoding before scanning begins.
package tokenizer
