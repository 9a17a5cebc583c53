// SPDX-License-Identifier: GPL-3.0-or-later
package bayes

import (
	"github.com/sievekit/go-sieve-bayes/domain"
	"github.com/sievekit/go-sieve-bayes/tokenize"
)

// Model accumulates the per-token deltas of a single document. It is built
// when a train or untrain begins, flushed entry by entry to the store and
// then discarded; it is never shared between calls.
type Model struct {
	Weights map[domain.TokenHash]domain.Weights
}

func NewModel() *Model {
	return &Model{
		Weights: make(map[domain.TokenHash]domain.Weights),
	}
}

// Train folds the token stream into the model, counting each emitted hash
// once per emission on the axis matching the document label.
func (m *Model) Train(tokens *tokenize.OsbTokenizer, isSpam bool) {
	for {
		token, ok := tokens.Next()
		if !ok {
			return
		}

		weights := m.Weights[token.Hash]
		if isSpam {
			weights.Spam++
		} else {
			weights.Ham++
		}
		m.Weights[token.Hash] = weights
	}
}

func (m *Model) Empty() bool {
	return len(m.Weights) == 0
}
