// SPDX-License-Identifier: GPL-3.0-or-later
package bayes

import (
	"fmt"
	"math"

	"github.com/sievekit/go-sieve-bayes/domain"
)

const (
	// Per-token probabilities are clamped away from 0 and 1 so a single
	// never-contradicted token cannot drive the log-sums to infinity.
	probFloor   = 0.01
	probCeiling = 0.99
)

// TokenWeight is one resolved token fed to the kernel: the emission index
// from the OSB stream and the counters read through the cache.
type TokenWeight struct {
	Idx     int
	Weights domain.Weights
}

// Classifier is the numerical kernel. Per-token spam probabilities are
// combined with Fisher's inverse chi-square in both directions (the Robinson
// method used by the classic OSB filters).
type Classifier struct {
	minTokenHits    uint32
	minProbStrength float64
	minLearns       uint32
}

type Option func(c *Classifier) error

// MinTokenHits sets how often a token must have been observed in total
// before it may contribute.
func MinTokenHits(hits uint32) Option {
	return func(c *Classifier) error {
		c.minTokenHits = hits
		return nil
	}
}

// MinProbStrength drops tokens whose spam probability is closer than this
// to the neutral 0.5.
func MinProbStrength(strength float64) Option {
	return func(c *Classifier) error {
		if strength < 0 || strength >= 0.5 {
			return fmt.Errorf("MinProbStrength must be in [0, 0.5), got %v", strength)
		}
		c.minProbStrength = strength
		return nil
	}
}

// MinLearns sets the per-class document count below which classification is
// withheld.
func MinLearns(learns uint32) Option {
	return func(c *Classifier) error {
		c.minLearns = learns
		return nil
	}
}

func NewClassifier(options ...Option) (*Classifier, error) {
	classifier := &Classifier{
		minTokenHits:    2,
		minProbStrength: 0.05,
		minLearns:       200,
	}
	for _, option := range options {
		err := option(classifier)
		if err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}

	return classifier, nil
}

func (c *Classifier) MinLearns() uint32 {
	return c.minLearns
}

// Classify consumes the lazy token sequence and returns P(spam) in [0,1].
// It declines (ok=false) when no token survives the hit and strength
// filters. next is pulled until it reports exhaustion.
func (c *Classifier) Classify(next func() (TokenWeight, bool), hamLearns, spamLearns uint32) (float64, bool) {
	var (
		lnSpam, lnHam float64
		used          int
	)

	for {
		token, ok := next()
		if !ok {
			break
		}

		total := uint64(token.Weights.Spam) + uint64(token.Weights.Ham)
		if total == 0 || total < uint64(c.minTokenHits) {
			continue
		}

		spamFreq := float64(token.Weights.Spam) / float64(atLeastOne(spamLearns))
		hamFreq := float64(token.Weights.Ham) / float64(atLeastOne(hamLearns))
		probability := spamFreq / (spamFreq + hamFreq)
		if math.Abs(probability-0.5) < c.minProbStrength {
			continue
		}

		probability = math.Min(math.Max(probability, probFloor), probCeiling)
		lnSpam += math.Log(probability)
		lnHam += math.Log(1 - probability)
		used++
	}

	if used == 0 {
		return 0, false
	}

	spamminess := chiSquareQ(-2*lnSpam, used)
	hamminess := chiSquareQ(-2*lnHam, used)
	return (spamminess - hamminess + 1) / 2, true
}

// chiSquareQ is the upper tail of the chi-square distribution with 2*halfDF
// degrees of freedom, evaluated with the closed form for even DF.
func chiSquareQ(chi float64, halfDF int) float64 {
	m := chi / 2
	term := math.Exp(-m)
	sum := term
	for i := 1; i < halfDF; i++ {
		term *= m / float64(i)
		sum += term
	}
	return math.Min(sum, 1)
}

func atLeastOne(n uint32) uint32 {
	if n == 0 {
		return 1
	}
	return n
}
