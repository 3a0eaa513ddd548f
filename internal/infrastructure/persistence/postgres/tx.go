package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

// sqlExecer is the subset of *sqlx.DB / *sqlx.Tx every repository in this
// package needs. Repositories are constructed against this interface
// rather than concretely against *sqlx.DB so the Re-evaluation
// Coordinator's caller can build one set of repositories scoped to a
// single *sqlx.Tx for the lifetime of one entry point call, per the
// coordinator's one-transaction-per-operation contract.
type sqlExecer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
}

// WithTx begins a transaction, runs fn against it, and commits or rolls
// back depending on the outcome. This is the single entry point every
// Re-evaluation Coordinator caller (HTTP handler, asynq task handler)
// should use to wrap PicturesAdded/TagsChanged/GroupsChanged/ArrangementEdited,
// per the coordinator's "one *sqlx.Tx per entry point" contract.
//
// fn's error is inspected with shared.MustRollback rather than always
// rolling back: a CyclePolicyLogAndContinue cycle warning degrades
// gracefully and should not discard writes that already succeeded for
// unrelated arrangements in the same pass.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	err = fn(tx)
	if err != nil && shared.MustRollback(err) {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return fmt.Errorf("commit transaction: %w", commitErr)
	}
	return err
}
