package repository

import (
	"context"
	"errors"

	"github.com/avolkov/shop-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned by repositories when the requested row is
	// absent. Services translate it into their own domain errors.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an insert violates a uniqueness
	// constraint, e.g. two sign-ups racing on the same login.
	ErrConflict = errors.New("conflict")
)

// UserRepository persists user records and their activation tokens.
type UserRepository interface {
	Create(ctx context.Context, role entity.Role, active bool) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]entity.User, error)
	// SetActive unconditionally sets the active flag. ErrNotFound if the
	// user does not exist.
	SetActive(ctx context.Context, id string, active bool) error
	// UpsertActivationToken creates or replaces the user's activation token;
	// a previously issued token stops resolving.
	UpsertActivationToken(ctx context.Context, userID, token string) (*entity.ActivationToken, error)
	GetActivationToken(ctx context.Context, token string) (*entity.ActivationToken, error)
	// DeleteActivationToken removes the token row, returning ErrNotFound when
	// no row was deleted. Inside a transaction the delete takes a row lock,
	// which is what serializes concurrent redemptions of the same token.
	DeleteActivationToken(ctx context.Context, token string) error
}

// CredentialRepository persists login-to-credential mappings.
type CredentialRepository interface {
	Create(ctx context.Context, userID, login string, passwordHash []byte) (*entity.Credentials, error)
	// GetByLogin returns ErrNotFound for an unknown login. Logins are
	// case-sensitive.
	GetByLogin(ctx context.Context, login string) (*entity.Credentials, error)
}

// Store groups the repositories over one backing database and lets callers
// run several repository calls in a single transaction. The Store passed to
// fn operates on the transaction; it commits when fn returns nil and rolls
// back otherwise.
type Store interface {
	Users() UserRepository
	Credentials() CredentialRepository
	InTx(ctx context.Context, fn func(Store) error) error
}
