// Package repository defines the store contracts the rest of the app
// consumes. Every ticket operation carries the owner id: the server
// enforces row ownership, and callers always pass the filter anyway as
// defense in depth.
package repository

import (
	"context"
	"errors"

	"github.com/awoyaledolapo/clytix-1/internal/models"
)

// ErrNotFound reports a ticket that does not exist or is not owned by
// the given owner. Any other store error is a transport failure.
var ErrNotFound = errors.New("ticket not found")

// TicketStore is the gateway to the remote ticket table.
type TicketStore interface {
	// List returns the owner's full collection ordered by created_at
	// descending. The result is always a complete snapshot.
	List(ctx context.Context, ownerID string) ([]models.Ticket, error)
	Create(ctx context.Context, ownerID string, d models.Draft) (*models.Ticket, error)
	Update(ctx context.Context, id, ownerID string, d models.Draft) error
	Delete(ctx context.Context, id, ownerID string) error
}

type UserStore interface {
	Create(ctx context.Context, email, name, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, string /*passwordHash*/, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
