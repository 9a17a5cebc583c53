// SPDX-License-Identifier: GPL-3.0-or-later
package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collectOsb(t *testing.T, text string, window int) []OsbToken {
	t.Helper()
	tokenizer := NewOsbTokenizer(NewWordTokenizer(text, PublicSuffixList{}), window)
	tokens := []OsbToken{}
	for {
		token, ok := tokenizer.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, token)
	}
}

func TestOsbSingleWord(t *testing.T) {
	tokens := collectOsb(t, "hello", 5)

	assert.Equal(t, []OsbToken{{Hash: HashToken("hello"), Idx: 0}}, tokens, "a single word should emit just its unigram")
}

func TestOsbEmissionOrder(t *testing.T) {
	tokens := collectOsb(t, "one two three", 3)

	expected := []OsbToken{
		{Hash: HashToken("one"), Idx: 0},
		{Hash: HashToken("two"), Idx: 1},
		{Hash: HashTokenPair("one", "two", 1), Idx: 2},
		{Hash: HashToken("three"), Idx: 3},
		{Hash: HashTokenPair("two", "three", 1), Idx: 4},
		{Hash: HashTokenPair("one", "three", 2), Idx: 5},
	}
	assert.Equal(t, expected, tokens, "emissions should follow word order, closest predecessor first")
}

func TestOsbWindowLimitsDistance(t *testing.T) {
	tokens := collectOsb(t, "a b c d", 2)

	// window 2 leaves only distance-1 pairs
	expected := []OsbToken{
		{Hash: HashToken("a"), Idx: 0},
		{Hash: HashToken("b"), Idx: 1},
		{Hash: HashTokenPair("a", "b", 1), Idx: 2},
		{Hash: HashToken("c"), Idx: 3},
		{Hash: HashTokenPair("b", "c", 1), Idx: 4},
		{Hash: HashToken("d"), Idx: 5},
		{Hash: HashTokenPair("c", "d", 1), Idx: 6},
	}
	assert.Equal(t, expected, tokens)
}

func TestOsbDuplicatesEmitted(t *testing.T) {
	tokens := collectOsb(t, "spam spam", 5)

	assert.Len(t, tokens, 3, "two words should emit two unigrams and one pair")
	assert.Equal(t, tokens[0].Hash, tokens[1].Hash, "repeated words should repeat their unigram hash")
}

func TestOsbEmptyText(t *testing.T) {
	assert.Empty(t, collectOsb(t, "", 5), "empty text should emit nothing")
}
