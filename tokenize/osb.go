// SPDX-License-Identifier: GPL-3.0-or-later
package tokenize

import (
	"hash/fnv"

	"github.com/cespare/xxhash/v2"

	"github.com/sievekit/go-sieve-bayes/domain"
)

// DefaultWindow is the OSB sliding-window size used by the bayes pipeline.
const DefaultWindow = 5

// OsbToken is one emitted OSB feature: its hash and the emission index.
type OsbToken struct {
	Hash domain.TokenHash
	Idx  int
}

// OsbTokenizer layers orthogonal sparse bigrams over a word tokenizer: for
// every word it emits the unigram feature plus one combined feature per
// predecessor within window-1 positions, tagged with the pair distance.
// Duplicate hashes are emitted as often as they occur.
type OsbTokenizer struct {
	inner   *WordTokenizer
	window  int
	history []string
	pending []OsbToken
	idx     int
}

func NewOsbTokenizer(inner *WordTokenizer, window int) *OsbTokenizer {
	if window < 2 {
		window = 2
	}
	return &OsbTokenizer{
		inner:  inner,
		window: window,
	}
}

func (t *OsbTokenizer) Next() (OsbToken, bool) {
	for len(t.pending) == 0 {
		word, ok := t.inner.Next()
		if !ok {
			return OsbToken{}, false
		}

		t.emit(HashToken(word))
		for distance, prev := range t.history {
			t.emit(HashTokenPair(prev, word, distance+1))
		}

		// history[0] is the closest predecessor
		t.history = append([]string{word}, t.history...)
		if len(t.history) > t.window-1 {
			t.history = t.history[:t.window-1]
		}
	}

	token := t.pending[0]
	t.pending = t.pending[1:]
	return token, true
}

func (t *OsbTokenizer) emit(hash domain.TokenHash) {
	t.pending = append(t.pending, OsbToken{Hash: hash, Idx: t.idx})
	t.idx++
}

// HashToken fingerprints a single word with two independent 64-bit hashes.
// The zero hash is reserved for the corpus-totals row; the all-zero result
// is remapped so no token can collide with it.
func HashToken(word string) domain.TokenHash {
	return hashBytes([]byte(word))
}

// HashTokenPair fingerprints an OSB word pair at the given distance. The
// distance byte keeps the feature streams per distance orthogonal.
func HashTokenPair(first, second string, distance int) domain.TokenHash {
	buf := make([]byte, 0, len(first)+len(second)+3)
	buf = append(buf, first...)
	buf = append(buf, 0)
	buf = append(buf, second...)
	buf = append(buf, 0, byte(distance))
	return hashBytes(buf)
}

func hashBytes(buf []byte) domain.TokenHash {
	f := fnv.New64a()
	f.Write(buf)

	hash := domain.TokenHash{
		H1: xxhash.Sum64(buf),
		H2: f.Sum64(),
	}
	if hash == domain.TotalsKey {
		hash.H1 = 1
	}
	return hash
}
