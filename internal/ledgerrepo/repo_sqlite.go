// Package ledgerrepo manages repository layer of the ledger.
package ledgerrepo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/go-petr/lendbook/internal/domain"
	"github.com/go-petr/lendbook/pkg/dbpkg"
	"github.com/go-petr/lendbook/pkg/errorspkg"
)

// snapshotKey is the single key the full ledger is stored under.
const snapshotKey = "accounts"

// RepoSQLite facilitates ledger repository layer logic.
//
// The ledger is persisted as one JSON-encoded array of accounts in a
// key-value table, read and rewritten whole on every mutation.
type RepoSQLite struct {
	db dbpkg.SQLInterface
}

// NewRepoSQLite returns ledger RepoSQLite.
func NewRepoSQLite(db dbpkg.SQLInterface) *RepoSQLite {
	return &RepoSQLite{
		db: db,
	}
}

const createTableQuery = `
CREATE TABLE IF NOT EXISTS ledger (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)
`

// Migrate ensures the ledger table exists.
func (r *RepoSQLite) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTableQuery); err != nil {
		return err
	}

	return nil
}

const loadQuery = `
SELECT value FROM ledger
WHERE key = ?
`

// Load reads the persisted ledger snapshot.
//
// An absent snapshot means an empty ledger, not an error.
func (r *RepoSQLite) Load(ctx context.Context) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var value string

	err := r.db.QueryRowContext(ctx, loadQuery, snapshotKey).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return []domain.Account{}, nil
		}

		l.Error().Err(err).Send()

		return nil, errorspkg.ErrInternal
	}

	var accounts []domain.Account
	if err := json.Unmarshal([]byte(value), &accounts); err != nil {
		l.Error().Err(err).Send()

		return nil, errorspkg.ErrInternal
	}

	if accounts == nil {
		accounts = []domain.Account{}
	}

	return accounts, nil
}

const saveQuery = `
INSERT INTO ledger (key, value)
VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value
`

// Save persists the full ledger snapshot.
func (r *RepoSQLite) Save(ctx context.Context, accounts []domain.Account) error {
	l := zerolog.Ctx(ctx)

	if accounts == nil {
		accounts = []domain.Account{}
	}

	value, err := json.Marshal(accounts)
	if err != nil {
		l.Error().Err(err).Send()

		return errorspkg.ErrInternal
	}

	if _, err := r.db.ExecContext(ctx, saveQuery, snapshotKey, string(value)); err != nil {
		l.Error().Err(err).Send()

		return errorspkg.ErrInternal
	}

	return nil
}
