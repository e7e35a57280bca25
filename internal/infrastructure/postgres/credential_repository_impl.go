package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avolkov/shop-api/internal/domain/entity"
	"github.com/avolkov/shop-api/internal/domain/repository"
)

const uniqueViolation = "23505"

type CredentialRepository struct {
	db Querier
}

func (r *CredentialRepository) Create(ctx context.Context, userID, login string, passwordHash []byte) (*entity.Credentials, error) {
	c := &entity.Credentials{}
	row := r.db.QueryRow(ctx, `
		INSERT INTO credentials (user_id, login, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, login, password_hash
	`, userID, login, passwordHash)
	if err := row.Scan(&c.ID, &c.UserID, &c.Login, &c.PasswordHash); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return c, nil
}

func (r *CredentialRepository) GetByLogin(ctx context.Context, login string) (*entity.Credentials, error) {
	c := &entity.Credentials{}
	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, login, password_hash
		FROM credentials
		WHERE login = $1
	`, login)
	if err := row.Scan(&c.ID, &c.UserID, &c.Login, &c.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

var _ repository.CredentialRepository = (*CredentialRepository)(nil)
