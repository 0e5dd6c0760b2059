package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/awoyaledolapo/clytix-1/internal/models"
)

var errEmailTaken = errors.New("email already registered")

type userRecord struct {
	user models.User
	hash string
}

type UserStore struct {
	mu    sync.Mutex
	users map[string]userRecord // keyed by id
}

func NewUserStore() *UserStore {
	return &UserStore{users: map[string]userRecord{}}
}

func (s *UserStore) Create(ctx context.Context, email, name, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.users {
		if rec.user.Email == email {
			return nil, errEmailTaken
		}
	}
	now := time.Now()
	u := models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[u.ID] = userRecord{user: u, hash: passwordHash}
	return &u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.users {
		if rec.user.Email == email {
			u := rec.user
			return &u, rec.hash, nil
		}
	}
	return nil, "", nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	u := rec.user
	return &u, nil
}
