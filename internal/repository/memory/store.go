// Package memory provides store implementations backed by process
// memory. They honor the same owner-scoping contract as the Postgres
// stores and back both the test suite and the DB-less dev mode.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/awoyaledolapo/clytix-1/internal/models"
	"github.com/awoyaledolapo/clytix-1/internal/repository"
)

type TicketStore struct {
	mu      sync.Mutex
	tickets map[string]models.Ticket
	now     func() time.Time
}

func NewTicketStore() *TicketStore {
	return &TicketStore{tickets: map[string]models.Ticket{}, now: time.Now}
}

// SetClock overrides the timestamp source. Tests use it to make
// created_at ordering deterministic.
func (s *TicketStore) SetClock(now func() time.Time) { s.now = now }

func (s *TicketStore) List(ctx context.Context, ownerID string) ([]models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Ticket
	for _, t := range s.tickets {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *TicketStore) Create(ctx context.Context, ownerID string, d models.Draft) (*models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	t := models.Ticket{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		Priority:    d.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tickets[t.ID] = t
	return &t, nil
}

func (s *TicketStore) Update(ctx context.Context, id, ownerID string, d models.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets[id]
	if !ok || t.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	t.Title = d.Title
	t.Description = d.Description
	t.Status = d.Status
	t.Priority = d.Priority
	t.UpdatedAt = s.now()
	s.tickets[id] = t
	return nil
}

func (s *TicketStore) Delete(ctx context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets[id]
	if !ok || t.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(s.tickets, id)
	return nil
}
