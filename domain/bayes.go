// SPDX-License-Identifier: GPL-3.0-or-later
package domain

// TokenHash is the 128-bit fingerprint of an OSB token, split into two
// 64-bit halves. Equality and map hashing use both halves.
type TokenHash struct {
	H1 uint64
	H2 uint64
}

// TotalsKey addresses the corpus-totals row. The zero hash is reserved for
// it unconditionally; the tokenizer never emits it for a real token.
var TotalsKey = TokenHash{}

// Weights is the per-token (or corpus-totals) counter pair. For the totals
// row, Spam and Ham hold the number of documents learned per class.
type Weights struct {
	Spam uint32
	Ham  uint32
}

// CacheState describes what a weight cache knows about a key.
type CacheState int

const (
	// CacheUnknown means the cache holds no answer; the store must be read.
	CacheUnknown = CacheState(0)
	// CachePresent means the store had a row at the last read or write-through.
	CachePresent = CacheState(1)
	// CacheAbsent means the store had no row at the last read.
	CacheAbsent = CacheState(2)
)

//go:generate mockgen -destination=mocks/cache.go -package=mocks . WeightCache

// WeightCache is the capability surface of the token-weight cache. The
// get-or-fetch logic lives outside it so alternate backings can be swapped.
type WeightCache interface {
	Get(hash TokenHash) (Weights, CacheState)
	InsertPositive(hash TokenHash, weights Weights)
	InsertNegative(hash TokenHash)
	Invalidate(hash TokenHash)
}
