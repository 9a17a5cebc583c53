// SPDX-License-Identifier: GPL-3.0-or-later
package bayes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sievekit/go-sieve-bayes/domain"
)

func feed(tokens []TokenWeight) func() (TokenWeight, bool) {
	i := 0
	return func() (TokenWeight, bool) {
		if i >= len(tokens) {
			return TokenWeight{}, false
		}
		token := tokens[i]
		i++
		return token, true
	}
}

func newTestClassifier(t *testing.T, options ...Option) *Classifier {
	t.Helper()
	classifier, err := NewClassifier(options...)
	assert.NoError(t, err)
	return classifier
}

func TestNewClassifierDefaults(t *testing.T) {
	classifier := newTestClassifier(t)
	assert.Equal(t, uint32(200), classifier.MinLearns())
}

func TestNewClassifierInvalidStrength(t *testing.T) {
	for _, strength := range []float64{-0.1, 0.5, 1} {
		_, err := NewClassifier(MinProbStrength(strength))
		assert.Error(t, err, "strength outside [0, 0.5) should be rejected")
	}
}

func TestClassifyDeclinesWithoutTokens(t *testing.T) {
	classifier := newTestClassifier(t, MinTokenHits(1), MinProbStrength(0))

	_, ok := classifier.Classify(feed(nil), 1, 1)
	assert.False(t, ok, "no tokens at all should decline")

	_, ok = classifier.Classify(feed([]TokenWeight{
		{Idx: 0, Weights: domain.Weights{}},
		{Idx: 1, Weights: domain.Weights{}},
	}), 1, 1)
	assert.False(t, ok, "only zero-weight tokens should decline")
}

func TestClassifySpamLeaning(t *testing.T) {
	classifier := newTestClassifier(t, MinTokenHits(1), MinProbStrength(0))

	probability, ok := classifier.Classify(feed([]TokenWeight{
		{Idx: 0, Weights: domain.Weights{Spam: 1}},
		{Idx: 1, Weights: domain.Weights{Spam: 1}},
		{Idx: 2, Weights: domain.Weights{Spam: 1}},
	}), 1, 1)
	assert.True(t, ok)
	assert.Greater(t, probability, 0.5, "tokens seen only in spam should score spammy")
	assert.LessOrEqual(t, probability, 1.0)
}

func TestClassifyHamLeaning(t *testing.T) {
	classifier := newTestClassifier(t, MinTokenHits(1), MinProbStrength(0))

	probability, ok := classifier.Classify(feed([]TokenWeight{
		{Idx: 0, Weights: domain.Weights{Ham: 2}},
		{Idx: 1, Weights: domain.Weights{Ham: 1}},
	}), 2, 2)
	assert.True(t, ok)
	assert.Less(t, probability, 0.5, "tokens seen only in ham should score hammy")
	assert.GreaterOrEqual(t, probability, 0.0)
}

func TestClassifyMixedEvidence(t *testing.T) {
	classifier := newTestClassifier(t, MinTokenHits(1), MinProbStrength(0))

	probability, ok := classifier.Classify(feed([]TokenWeight{
		{Idx: 0, Weights: domain.Weights{Spam: 3, Ham: 3}},
	}), 10, 10)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, probability, 0.01, "balanced evidence should stay neutral")
}

func TestClassifyMinTokenHits(t *testing.T) {
	classifier := newTestClassifier(t, MinTokenHits(3), MinProbStrength(0))

	_, ok := classifier.Classify(feed([]TokenWeight{
		{Idx: 0, Weights: domain.Weights{Spam: 2}},
	}), 5, 5)
	assert.False(t, ok, "tokens under the hit threshold should not contribute")

	probability, ok := classifier.Classify(feed([]TokenWeight{
		{Idx: 0, Weights: domain.Weights{Spam: 3}},
	}), 5, 5)
	assert.True(t, ok, "a token meeting the threshold should contribute")
	assert.Greater(t, probability, 0.5)
}

func TestClassifyMinProbStrength(t *testing.T) {
	classifier := newTestClassifier(t, MinTokenHits(1), MinProbStrength(0.3))

	// p = (2/10) / (2/10 + 3/10) = 0.4, within [0.2, 0.8) of the neutral band
	_, ok := classifier.Classify(feed([]TokenWeight{
		{Idx: 0, Weights: domain.Weights{Spam: 2, Ham: 3}},
	}), 10, 10)
	assert.False(t, ok, "near-neutral tokens should not contribute")
}

func TestClassifyLearnsSkewNormalization(t *testing.T) {
	classifier := newTestClassifier(t, MinTokenHits(1), MinProbStrength(0))

	// Token seen once per class, but the ham corpus is ten times larger:
	// relative to corpus size the token leans spam.
	probability, ok := classifier.Classify(feed([]TokenWeight{
		{Idx: 0, Weights: domain.Weights{Spam: 1, Ham: 1}},
	}), 10, 1)
	assert.True(t, ok)
	assert.Greater(t, probability, 0.5, "frequencies should be normalized by per-class learns")
}
