package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/avolkov/shop-api/internal/domain/entity"
	"github.com/avolkov/shop-api/internal/domain/repository"
	"github.com/avolkov/shop-api/pkg/helpers"
)

// Principal is the authenticated identity derived from a validated session
// token, as seen by guarded handlers.
type Principal struct {
	UserID string
	Role   entity.Role
}

// SignInResult carries the session token issued on successful sign-in.
type SignInResult struct {
	Token string
}

// SignUpResult carries the activation token to be delivered out of band.
type SignUpResult struct {
	ActivationToken string
}

// AuthService orchestrates sign-up and sign-in on top of the credential
// store, the password hasher, and the session-token codec.
type AuthService struct {
	store  repository.Store
	users  *UserService
	hasher *helpers.PasswordHasher
	tokens *helpers.JWTManager
	logger *logrus.Logger
}

func NewAuthService(store repository.Store, users *UserService, hasher *helpers.PasswordHasher, tokens *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{store: store, users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// SignIn validates the login/password pair and issues a session token bound
// to the credential's user. Every failed attempt is independent; there is no
// lockout or backoff.
func (s *AuthService) SignIn(ctx context.Context, login, password string) (*SignInResult, error) {
	creds, err := s.store.Credentials().GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLoginNotExist
		}
		return nil, fmt.Errorf("get credentials: %w", err)
	}
	if !s.hasher.Verify(password, creds.PasswordHash) {
		return nil, ErrInvalidPassword
	}
	token, err := s.tokens.Encode(creds.UserID)
	if err != nil {
		return nil, fmt.Errorf("encode token: %w", err)
	}
	return &SignInResult{Token: token}, nil
}

// SignUp creates an inactive regular user with credentials and an activation
// token, all inside one store transaction: either the whole account exists
// afterwards or none of it does.
func (s *AuthService) SignUp(ctx context.Context, login, password string) (*SignUpResult, error) {
	if _, err := s.store.Credentials().GetByLogin(ctx, login); err == nil {
		return nil, ErrLoginAlreadyExist
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("get credentials: %w", err)
	}

	stored, err := s.hasher.Seal(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var result SignUpResult
	err = s.store.InTx(ctx, func(tx repository.Store) error {
		user, err := tx.Users().Create(ctx, entity.RoleRegular, false)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if _, err := tx.Credentials().Create(ctx, user.ID, login, stored); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				// Lost a race against a concurrent sign-up on the same login.
				return ErrLoginAlreadyExist
			}
			return fmt.Errorf("create credentials: %w", err)
		}
		tok, err := tx.Users().UpsertActivationToken(ctx, user.ID, uuid.NewString())
		if err != nil {
			return fmt.Errorf("upsert activation token: %w", err)
		}
		result.ActivationToken = tok.Token
		s.logger.WithFields(logrus.Fields{"user_id": user.ID, "login": login}).Info("user signed up")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Authenticate validates an inbound session token and yields the principal
// it asserts. Any structural problem with the token, or a user that no
// longer resolves, yields helpers.ErrInvalidToken.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.tokens.Decode(token)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotExist) {
			return nil, helpers.ErrInvalidToken
		}
		return nil, err
	}
	return &Principal{UserID: u.ID, Role: u.Role}, nil
}
