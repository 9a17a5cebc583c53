// SPDX-License-Identifier: GPL-3.0-or-later
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"

	"github.com/sievekit/go-sieve-bayes/domain"
	"github.com/sievekit/go-sieve-bayes/log"
)

var migrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "1-tokens",
			Up: []string{
				`CREATE TABLE tokens (
					h1 INTEGER NOT NULL,
					h2 INTEGER NOT NULL,
					spam INTEGER NOT NULL DEFAULT 0,
					ham INTEGER NOT NULL DEFAULT 0,
					PRIMARY KEY (h1, h2)
				)`,
			},
			Down: []string{`DROP TABLE tokens`},
		},
	},
}

// SqliteStore is a LookupStore backed by a single sqlite database. The
// corpus-totals row lives in the same table under the reserved (0,0) key.
type SqliteStore struct {
	db *sqlx.DB
	l  *logrus.Logger
}

func NewSqliteStore(datasource string) (*SqliteStore, error) {
	db, err := sqlx.Connect("sqlite3", datasource)
	if err != nil {
		return nil, fmt.Errorf("could not open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	l := log.Logger(log.LOG_STORE)
	l.WithField("file", datasource).Info("Connected")

	_, err = db.Exec(`PRAGMA journal_mode=WAL`)
	if err != nil {
		return nil, fmt.Errorf("could not set journal mode: %w", err)
	}
	_, err = db.Exec(`PRAGMA synchronous=normal`)
	if err != nil {
		return nil, fmt.Errorf("could not set synchronous mode: %w", err)
	}

	appliedMigrations, err := migrate.Exec(db.DB, "sqlite3", migrations, migrate.Up)
	if err != nil {
		return nil, fmt.Errorf("could not migrate to newest version: %w", err)
	}

	l.WithField("migrations", appliedMigrations).Debug("Executed migrations")

	return &SqliteStore{
		db: db,
		l:  l,
	}, nil
}

func (s *SqliteStore) Close() error {
	err := s.db.Close()
	if err != nil {
		return fmt.Errorf("could not close db: %w", err)
	}
	s.l.Info("Disconnected")
	return nil
}

// Query reads the counter row for [h1, h2].
func (s *SqliteStore) Query(ctx context.Context, columns []int64) (domain.Row, bool, error) {
	if len(columns) != 2 {
		return nil, false, fmt.Errorf("query expects 2 columns, got %d", len(columns))
	}

	dbRow := struct {
		Spam int64
		Ham  int64
	}{}
	err := s.db.GetContext(
		ctx,
		&dbRow,
		`SELECT spam, ham FROM tokens WHERE h1 = ? AND h2 = ?`,
		columns[0],
		columns[1],
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("could not query db: %w", err)
	}

	return domain.Row{dbRow.Spam, dbRow.Ham}, true, nil
}

// Lookup applies the signed deltas of [h1, h2, deltaSpam, deltaHam] with
// saturation at zero and returns the resulting row. Deltas to one key are
// commutative, so concurrent trainers need no coordination here.
func (s *SqliteStore) Lookup(ctx context.Context, columns []int64) (domain.Row, bool, error) {
	if len(columns) != 4 {
		return nil, false, fmt.Errorf("lookup expects 4 columns, got %d", len(columns))
	}

	h1, h2, deltaSpam, deltaHam := columns[0], columns[1], columns[2], columns[3]
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO tokens (h1, h2, spam, ham) VALUES (?, ?, MAX(0, ?), MAX(0, ?))
		ON CONFLICT (h1, h2) DO UPDATE SET spam = MAX(0, spam + ?), ham = MAX(0, ham + ?)`,
		h1, h2, deltaSpam, deltaHam, deltaSpam, deltaHam,
	)
	if err != nil {
		return nil, false, fmt.Errorf("could not apply deltas: %w", err)
	}

	return s.Query(ctx, []int64{h1, h2})
}
