package lexicon

import (
	"fmt"
	"sort"

	"github.com/viant/lexvec/vector"
)

// Match is a single vocabulary similarity hit.
type Match struct {
	Text  string
	Hash  uint64
	Score float64
}

// knnIndex is a brute-force cosine index over the vocabulary with
// precomputed magnitudes. Entries are held in sorted text order so queries
// are deterministic.
type knnIndex struct {
	texts []string
	vecs  [][]float32
	mags  []float64
}

func buildIndex(entries map[string][]float32) *knnIndex {
	texts := make([]string, 0, len(entries))
	for text := range entries {
		texts = append(texts, text)
	}
	sort.Strings(texts)

	ix := &knnIndex{
		texts: texts,
		vecs:  make([][]float32, len(texts)),
		mags:  make([]float64, len(texts)),
	}
	for i, text := range texts {
		ix.vecs[i] = entries[text]
		ix.mags[i] = vector.Magnitude(entries[text])
	}
	return ix
}

// MostSimilar returns up to k vocabulary entries ranked by cosine similarity
// to the query vector, highest first, with ties broken by ascending text.
// Zero-magnitude vocabulary entries are skipped; a zero-magnitude or
// mismatched query yields an error. When k <= 0 all entries are returned.
//
// The underlying index is built lazily on first use and reused afterwards;
// it never observes mutations because the lexicon is read-only after load.
func (l *Lexicon) MostSimilar(query []float32, k int) ([]Match, error) {
	if len(query) != l.dim {
		return nil, fmt.Errorf("lexicon: query dim %d, lexicon dim %d", len(query), l.dim)
	}
	qm := vector.Magnitude(query)
	if qm == 0 {
		return nil, fmt.Errorf("lexicon: most-similar query has zero magnitude")
	}

	l.indexOnce.Do(func() { l.index = buildIndex(l.entries) })
	ix := l.index

	type scored struct {
		pos   int
		score float64
	}
	scoreds := make([]scored, 0, len(ix.texts))
	for i := range ix.vecs {
		if ix.mags[i] == 0 {
			continue
		}
		sim, err := vector.CosineSimilarity(query, ix.vecs[i])
		if err != nil {
			return nil, err
		}
		scoreds = append(scoreds, scored{pos: i, score: sim})
	}
	sort.Slice(scoreds, func(a, b int) bool {
		if scoreds[a].score != scoreds[b].score {
			return scoreds[a].score > scoreds[b].score
		}
		return ix.texts[scoreds[a].pos] < ix.texts[scoreds[b].pos]
	})

	if k <= 0 || k > len(scoreds) {
		k = len(scoreds)
	}
	out := make([]Match, k)
	for n := 0; n < k; n++ {
		text := ix.texts[scoreds[n].pos]
		out[n] = Match{Text: text, Hash: Hash(text), Score: scoreds[n].score}
	}
	return out, nil
}
