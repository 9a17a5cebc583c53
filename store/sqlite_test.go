// SPDX-License-Identifier: GPL-3.0-or-later
package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sievekit/go-sieve-bayes/domain"
	"github.com/sievekit/go-sieve-bayes/log"
)

func newTestStore(t *testing.T) *SqliteStore {
	t.Helper()
	log.InitLogging("error")

	store, err := NewSqliteStore(":memory:")
	assert.NoError(t, err, "in-memory store should open")
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestQueryMiss(t *testing.T) {
	store := newTestStore(t)

	row, found, err := store.Query(context.Background(), []int64{1, 2})
	assert.NoError(t, err)
	assert.False(t, found, "an untouched key should not exist")
	assert.Nil(t, row)
}

func TestQueryColumnCount(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.Query(context.Background(), []int64{1})
	assert.Error(t, err, "query should reject the wrong column count")

	_, _, err = store.Lookup(context.Background(), []int64{1, 2, 3})
	assert.Error(t, err, "lookup should reject the wrong column count")
}

func TestLookupInsertsAndQueries(t *testing.T) {
	store := newTestStore(t)

	row, found, err := store.Lookup(context.Background(), []int64{1, 2, 3, 1})
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.Row{3, 1}, row, "first delta should create the row")

	row, found, err = store.Query(context.Background(), []int64{1, 2})
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.Row{3, 1}, row)
}

func TestLookupAccumulates(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.Lookup(context.Background(), []int64{1, 2, 2, 0})
	assert.NoError(t, err)

	row, found, err := store.Lookup(context.Background(), []int64{1, 2, 1, 4})
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.Row{3, 4}, row, "deltas to the same key should accumulate")
}

func TestLookupSaturatesAtZero(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.Lookup(context.Background(), []int64{1, 2, 1, 1})
	assert.NoError(t, err)

	row, found, err := store.Lookup(context.Background(), []int64{1, 2, -5, -1})
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.Row{0, 0}, row, "negative deltas should saturate at zero")
}

func TestLookupNegativeFirstDeltaSaturates(t *testing.T) {
	store := newTestStore(t)

	row, found, err := store.Lookup(context.Background(), []int64{5, 6, -3, -2})
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.Row{0, 0}, row, "untraining an unknown key should clamp to zero, not go negative")
}

func TestTotalsSentinelRow(t *testing.T) {
	store := newTestStore(t)

	row, found, err := store.Lookup(context.Background(), []int64{0, 0, 1, 0})
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.Row{1, 0}, row, "the totals row lives under the reserved zero key")

	row, found, err = store.Query(context.Background(), []int64{0, 0})
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.Row{1, 0}, row)
}
