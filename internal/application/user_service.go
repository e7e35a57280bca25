package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/avolkov/shop-api/internal/domain/entity"
	"github.com/avolkov/shop-api/internal/domain/repository"
	"github.com/avolkov/shop-api/pkg/helpers"
)

const defaultUsersPageSize = 10

// UserService orchestrates user creation, activation-token issuance, and
// token redemption. It is the only writer of the user active flag.
type UserService struct {
	store    repository.Store
	rdb      *redis.Client
	cacheTTL time.Duration
	logger   *logrus.Logger
}

func NewUserService(store repository.Store, rdb *redis.Client, cacheTTL time.Duration, logger *logrus.Logger) *UserService {
	return &UserService{store: store, rdb: rdb, cacheTTL: cacheTTL, logger: logger}
}

func userCacheKey(id string) string { return "user:profile:" + id }

// CreateUser persists a new user. Callers that want the default lifecycle
// pass active=false; the seed command is the only caller that overrides it.
func (s *UserService) CreateUser(ctx context.Context, role entity.Role, active bool) (*entity.User, error) {
	u, err := s.store.Users().Create(ctx, role, active)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetUser loads a user by id, reading through the redis cache when one is
// configured.
func (s *UserService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	if s.rdb != nil {
		var cached entity.User
		if ok, err := helpers.RedisGetJSON(ctx, s.rdb, userCacheKey(id), &cached); err == nil && ok {
			return &cached, nil
		}
	}
	u, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotExist
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if s.rdb != nil {
		if err := helpers.RedisSetJSON(ctx, s.rdb, userCacheKey(id), u, s.cacheTTL); err != nil {
			s.logger.WithError(err).WithField("user_id", id).Warn("user cache write failed")
		}
	}
	return u, nil
}

// GetUsers returns a page of users ordered by creation.
func (s *UserService) GetUsers(ctx context.Context, limit, offset int) ([]entity.User, error) {
	if limit <= 0 {
		limit = defaultUsersPageSize
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.store.Users().List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ChangeUserActivation sets the active flag unconditionally. Setting an
// already-matching state is not an error.
func (s *UserService) ChangeUserActivation(ctx context.Context, userID string, active bool) error {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotExist
		}
		return fmt.Errorf("get user: %w", err)
	}
	if err := s.store.Users().SetActive(ctx, userID, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotExist
		}
		return fmt.Errorf("set active: %w", err)
	}
	s.dropCached(ctx, userID)
	return nil
}

// CreateActivationToken issues a fresh activation token for an inactive user.
// Any previously issued token for the same user stops resolving.
func (s *UserService) CreateActivationToken(ctx context.Context, userID string) (*entity.ActivationToken, error) {
	u, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotExist
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u.Active {
		return nil, ErrUserAlreadyActivated
	}
	tok, err := s.store.Users().UpsertActivationToken(ctx, userID, uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("upsert activation token: %w", err)
	}
	return tok, nil
}

// ActivateUserByToken redeems an activation token: the owning user becomes
// active and the token is deleted, atomically. Concurrent redemptions of the
// same token are serialized by the token-row delete inside the transaction,
// so at most one caller wins; the others observe ErrInvalidActivationToken
// or ErrUserAlreadyActivated.
func (s *UserService) ActivateUserByToken(ctx context.Context, token string) error {
	tok, err := s.store.Users().GetActivationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidActivationToken
		}
		return fmt.Errorf("get activation token: %w", err)
	}

	u, err := s.store.Users().GetByID(ctx, tok.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Token row outlived its user; treat it as stale.
			return ErrInvalidActivationToken
		}
		return fmt.Errorf("get user: %w", err)
	}
	if u.Active {
		return ErrUserAlreadyActivated
	}

	err = s.store.InTx(ctx, func(tx repository.Store) error {
		if err := tx.Users().DeleteActivationToken(ctx, token); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrInvalidActivationToken
			}
			return fmt.Errorf("delete activation token: %w", err)
		}
		if err := tx.Users().SetActive(ctx, tok.UserID, true); err != nil {
			return fmt.Errorf("set active: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.dropCached(ctx, tok.UserID)
	s.logger.WithField("user_id", tok.UserID).Info("user activated")
	return nil
}

func (s *UserService) dropCached(ctx context.Context, userID string) {
	if s.rdb == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.rdb, userCacheKey(userID)); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("user cache invalidation failed")
	}
}
