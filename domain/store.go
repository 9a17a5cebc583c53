// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "context"

// Row is a result row returned by a LookupStore. For the bayes schema it is
// the two counter columns {spam, ham}.
type Row []int64

//go:generate mockgen -destination=mocks/store.go -package=mocks . LookupStore

// LookupStore is a key-value store addressed by the two token hash halves.
// The bool result signals row existence; a non-nil error is an I/O failure
// and says nothing about existence. The store is authoritative: counter
// saturation, durability and concurrency control are its responsibility.
type LookupStore interface {
	// Query is a read-only lookup. Columns are [h1, h2].
	Query(ctx context.Context, columns []int64) (Row, bool, error)
	// Lookup is a read-modify-write. Columns are [h1, h2, deltaSpam,
	// deltaHam]; deltas are applied with saturation at zero and the
	// resulting row is returned.
	Lookup(ctx context.Context, columns []int64) (Row, bool, error)
	Close() error
}

// LookupResolver resolves a named LookupStore handle, typically backed by a
// process-wide registry.
type LookupResolver interface {
	Get(id string) (LookupStore, bool)
}
