package tickets

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/awoyaledolapo/clytix-1/internal/repository"
)

// Registry hands out one Controller per authenticated owner and drops
// it when the identity goes away (logout or session expiry).
type Registry struct {
	store repository.TicketStore
	log   zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*Controller
}

func NewRegistry(store repository.TicketStore, log zerolog.Logger) *Registry {
	return &Registry{
		store:    store,
		log:      log,
		sessions: map[string]*Controller{},
	}
}

// Get returns the owner's session controller, creating it on first use.
func (r *Registry) Get(ownerID string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.sessions[ownerID]; ok {
		return c
	}
	c := NewController(ownerID, r.store, LogNotifier(r.log.With().Str("owner", ownerID).Logger()))
	r.sessions[ownerID] = c
	return c
}

// Drop closes and removes the owner's session. Safe to call when no
// session exists.
func (r *Registry) Drop(ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.sessions[ownerID]; ok {
		c.Close()
		delete(r.sessions, ownerID)
	}
}
