package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/avolkov/shop-api/internal/domain/entity"
	"github.com/avolkov/shop-api/internal/domain/repository"
)

type UserRepository struct {
	db Querier
}

func (r *UserRepository) Create(ctx context.Context, role entity.Role, active bool) (*entity.User, error) {
	u := &entity.User{}
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (role, active)
		VALUES ($1, $2)
		RETURNING id, role, active, created_at
	`, role, active)
	if err := row.Scan(&u.ID, &u.Role, &u.Active, &u.CreatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	u := &entity.User{}
	row := r.db.QueryRow(ctx, `
		SELECT id, role, active, created_at
		FROM users
		WHERE id = $1
	`, id)
	if err := row.Scan(&u.ID, &u.Role, &u.Active, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, role, active, created_at
		FROM users
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]entity.User, 0, limit)
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Role, &u.Active, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrNotFound
	}
	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET active = $2
		WHERE id = $1
	`, id, active)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpsertActivationToken(ctx context.Context, userID, token string) (*entity.ActivationToken, error) {
	tok := &entity.ActivationToken{}
	row := r.db.QueryRow(ctx, `
		INSERT INTO activation_tokens (token, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET token = EXCLUDED.token
		RETURNING token, user_id
	`, token, userID)
	if err := row.Scan(&tok.Token, &tok.UserID); err != nil {
		return nil, err
	}
	return tok, nil
}

func (r *UserRepository) GetActivationToken(ctx context.Context, token string) (*entity.ActivationToken, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, repository.ErrNotFound
	}
	tok := &entity.ActivationToken{}
	row := r.db.QueryRow(ctx, `
		SELECT token, user_id
		FROM activation_tokens
		WHERE token = $1
	`, token)
	if err := row.Scan(&tok.Token, &tok.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return tok, nil
}

// DeleteActivationToken removes the token row. When called inside a
// transaction the delete locks the row until commit, so of two concurrent
// redemptions only the first sees an affected row.
func (r *UserRepository) DeleteActivationToken(ctx context.Context, token string) error {
	if _, err := uuid.Parse(token); err != nil {
		return repository.ErrNotFound
	}
	res, err := r.db.Exec(ctx, `
		DELETE FROM activation_tokens
		WHERE token = $1
	`, token)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
