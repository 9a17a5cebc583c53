// SPDX-License-Identifier: GPL-3.0-or-later
package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/sievekit/go-sieve-bayes/domain"
	"github.com/sievekit/go-sieve-bayes/log"
)

// TokenCache deduplicates store reads for hot tokens. It keeps two LRU maps:
// a positive one holding weights read from the store and a negative one
// recording keys the store is known to lack. A key in neither map is in the
// Unknown state and forces a store read. There is no TTL; trainers
// invalidate mutated keys explicitly.
type TokenCache struct {
	positive *lru.Cache[domain.TokenHash, domain.Weights]
	negative *lru.Cache[domain.TokenHash, struct{}]

	l *logrus.Logger
}

// NewTokenCache builds a cache with separate capacities for positive and
// negative entries. The negative side is usually sized larger: classifying
// typical text touches many tokens the corpus has never seen.
func NewTokenCache(positiveSize, negativeSize int) (*TokenCache, error) {
	positive, err := lru.New[domain.TokenHash, domain.Weights](positiveSize)
	if err != nil {
		return nil, fmt.Errorf("could not create positive cache: %w", err)
	}
	negative, err := lru.New[domain.TokenHash, struct{}](negativeSize)
	if err != nil {
		return nil, fmt.Errorf("could not create negative cache: %w", err)
	}

	return &TokenCache{
		positive: positive,
		negative: negative,
		l:        log.Logger(log.LOG_CACHE),
	}, nil
}

func (c *TokenCache) Get(hash domain.TokenHash) (domain.Weights, domain.CacheState) {
	if weights, ok := c.positive.Get(hash); ok {
		return weights, domain.CachePresent
	}
	if _, ok := c.negative.Get(hash); ok {
		return domain.Weights{}, domain.CacheAbsent
	}
	return domain.Weights{}, domain.CacheUnknown
}

func (c *TokenCache) InsertPositive(hash domain.TokenHash, weights domain.Weights) {
	c.negative.Remove(hash)
	c.positive.Add(hash, weights)
}

func (c *TokenCache) InsertNegative(hash domain.TokenHash) {
	c.positive.Remove(hash)
	c.negative.Add(hash, struct{}{})
}

// Invalidate drops the entry for hash back to Unknown. Idempotent.
func (c *TokenCache) Invalidate(hash domain.TokenHash) {
	c.positive.Remove(hash)
	c.negative.Remove(hash)
}

// GetOrFetch resolves the weights for hash through the cache, falling
// through to the store on Unknown. A store row transitions the entry to
// Present, a miss to Absent; both count as an answer and return ok=true.
// Only a store I/O failure returns ok=false, leaving the entry Unknown.
func GetOrFetch(ctx context.Context, c domain.WeightCache, store domain.LookupStore, hash domain.TokenHash) (domain.Weights, bool) {
	weights, state := c.Get(hash)
	switch state {
	case domain.CachePresent:
		return weights, true
	case domain.CacheAbsent:
		return domain.Weights{}, true
	}

	row, found, err := store.Query(ctx, []int64{int64(hash.H1), int64(hash.H2)})
	if err != nil {
		log.Logger(log.LOG_CACHE).WithFields(logrus.Fields{"h1": hash.H1, "h2": hash.H2, "error": err}).Debug("Store read failed")
		return domain.Weights{}, false
	}
	if !found || len(row) < 2 {
		c.InsertNegative(hash)
		return domain.Weights{}, true
	}

	weights = domain.Weights{Spam: uint32(row[0]), Ham: uint32(row[1])}
	c.InsertPositive(hash, weights)
	return weights, true
}
