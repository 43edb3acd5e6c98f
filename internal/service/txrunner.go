package service

import (
	"context"

	"github.com/alex28786/the-reef/core/db"
	"github.com/alex28786/the-reef/core/db/sqlc"
	"github.com/alex28786/the-reef/internal/store"
)

// StoreProvider exposes only the stores needed by a transactional operation.
type StoreProvider interface {
	Users() store.UserStore
	Reefs() store.ReefStore
	ReefInvitations() store.ReefInvitationStore
	SharedContexts() store.SharedContextStore
	Submissions() store.SubmissionStore
}

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q *sqlc.Queries) error {
		return fn(store.NewStores(q))
	})
}
