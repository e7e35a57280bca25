package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avolkov/shop-api/internal/domain/repository"
)

// Querier is the subset of pgx used by the repositories. Both *pgxpool.Pool
// and pgx.Tx satisfy it, which is what lets one repository implementation
// serve plain calls and transactional calls alike.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements repository.Store over a pgx pool.
type Store struct {
	db   Querier
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{db: pool, pool: pool}
}

func (s *Store) Users() repository.UserRepository {
	return &UserRepository{db: s.db}
}

func (s *Store) Credentials() repository.CredentialRepository {
	return &CredentialRepository{db: s.db}
}

// InTx runs fn against a transactional copy of the store, committing when fn
// returns nil and rolling back otherwise. Calls on a store that is already
// transactional join the ongoing transaction.
func (s *Store) InTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.pool == nil {
		return fn(s)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(&Store{db: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

var _ repository.Store = (*Store)(nil)
