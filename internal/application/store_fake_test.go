package application

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/avolkov/shop-api/internal/domain/entity"
	"github.com/avolkov/shop-api/internal/domain/repository"
)

// memStore is an in-memory repository.Store for service tests. InTx holds a
// dedicated mutex for the whole callback, mirroring the serialization the
// real store gets from row locks.
type memStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	users  map[string]*entity.User
	order  []string
	creds  map[string]*entity.Credentials // by login
	tokens map[string]string              // token -> user id
}

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[string]*entity.User),
		creds:  make(map[string]*entity.Credentials),
		tokens: make(map[string]string),
	}
}

func (s *memStore) Users() repository.UserRepository             { return &memUsers{s: s} }
func (s *memStore) Credentials() repository.CredentialRepository { return &memCreds{s: s} }

func (s *memStore) InTx(ctx context.Context, fn func(repository.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s)
}

type memUsers struct {
	s *memStore
}

func (r *memUsers) Create(ctx context.Context, role entity.Role, active bool) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := &entity.User{ID: uuid.NewString(), Role: role, Active: active, CreatedAt: time.Now()}
	r.s.users[u.ID] = u
	r.s.order = append(r.s.order, u.ID)
	out := *u
	return &out, nil
}

func (r *memUsers) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *memUsers) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.User, 0, limit)
	for i := offset; i < len(r.s.order) && len(out) < limit; i++ {
		out = append(out, *r.s.users[r.s.order[i]])
	}
	return out, nil
}

func (r *memUsers) SetActive(ctx context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Active = active
	return nil
}

func (r *memUsers) UpsertActivationToken(ctx context.Context, userID, token string) (*entity.ActivationToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for t, uid := range r.s.tokens {
		if uid == userID {
			delete(r.s.tokens, t)
		}
	}
	r.s.tokens[token] = userID
	return &entity.ActivationToken{Token: token, UserID: userID}, nil
}

func (r *memUsers) GetActivationToken(ctx context.Context, token string) (*entity.ActivationToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	uid, ok := r.s.tokens[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &entity.ActivationToken{Token: token, UserID: uid}, nil
}

func (r *memUsers) DeleteActivationToken(ctx context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tokens[token]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.tokens, token)
	return nil
}

type memCreds struct {
	s *memStore
}

func (r *memCreds) Create(ctx context.Context, userID, login string, passwordHash []byte) (*entity.Credentials, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.creds[login]; ok {
		return nil, repository.ErrConflict
	}
	c := &entity.Credentials{ID: uuid.NewString(), UserID: userID, Login: login, PasswordHash: passwordHash}
	r.s.creds[login] = c
	out := *c
	return &out, nil
}

func (r *memCreds) GetByLogin(ctx context.Context, login string) (*entity.Credentials, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.creds[login]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *c
	return &out, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
