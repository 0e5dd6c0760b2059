// Package tickets implements the per-session state machine behind the
// ticket management view: the owner's ticket snapshot, the single
// create/edit draft, and the delete confirmation flow, kept consistent
// with the store under validation rules and transport failure.
package tickets

import (
	"context"
	"errors"
	"sync"

	"github.com/awoyaledolapo/clytix-1/internal/models"
	"github.com/awoyaledolapo/clytix-1/internal/repository"
	"github.com/awoyaledolapo/clytix-1/internal/validate"
)

type ListState string

const (
	ListLoading    ListState = "loading"
	ListLoaded     ListState = "loaded"
	ListLoadFailed ListState = "load_failed"
)

type FormMode string

const (
	FormHidden   FormMode = "hidden"
	FormCreating FormMode = "creating"
	FormEditing  FormMode = "editing"
)

// FormState carries the ticket id only while editing.
type FormState struct {
	Mode     FormMode `json:"mode"`
	TicketID string   `json:"ticket_id,omitempty"`
}

// DeleteConfirm is the pending target of a two-phase delete. A nil
// pointer means no delete is pending, so "at most one pending target"
// holds by construction.
type DeleteConfirm struct {
	TicketID string `json:"ticket_id"`
}

// State is a consistent snapshot of the session for rendering.
type State struct {
	ListState     ListState       `json:"list_state"`
	Tickets       []models.Ticket `json:"tickets"`
	Form          FormState       `json:"form"`
	Draft         models.Draft    `json:"draft"`
	Errors        validate.Errors `json:"errors,omitempty"`
	PendingDelete *DeleteConfirm  `json:"pending_delete,omitempty"`
	Busy          bool            `json:"busy"`
	Notices       []Notification  `json:"notices,omitempty"`
}

// Controller owns all mutable session state. A session is one logical
// thread of control, but its events arrive over concurrent HTTP
// handlers, so the mutex plays that thread: state reads and writes are
// serialized, while store calls run outside the lock and re-check
// liveness before applying their result. The ticket collection is only
// ever replaced wholesale by a completed reload, never patched.
type Controller struct {
	store    repository.TicketStore
	notifier Notifier
	ownerID  string

	mu            sync.Mutex
	tickets       []models.Ticket
	listState     ListState
	form          FormState
	draft         models.Draft
	fieldErrs     validate.Errors
	pendingDelete *DeleteConfirm
	busy          bool // create/update/delete in flight
	reloading     bool
	closed        bool
	notices       []Notification
}

func NewController(ownerID string, store repository.TicketStore, notifier Notifier) *Controller {
	return &Controller{
		store:     store,
		notifier:  notifier,
		ownerID:   ownerID,
		listState: ListLoading,
		form:      FormState{Mode: FormHidden},
		draft:     models.NewDraft(),
	}
}

// Snapshot copies the current state and drains accumulated notices.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		ListState: c.listState,
		Tickets:   append([]models.Ticket(nil), c.tickets...),
		Form:      c.form,
		Draft:     c.draft,
		Busy:      c.busy,
		Notices:   c.notices,
	}
	if len(c.fieldErrs) > 0 {
		s.Errors = validate.Errors{}
		for k, v := range c.fieldErrs {
			s.Errors[k] = v
		}
	}
	if c.pendingDelete != nil {
		pd := *c.pendingDelete
		s.PendingDelete = &pd
	}
	c.notices = nil
	return s
}

// Reload fetches the owner's full collection and replaces the snapshot.
// A reload already in flight absorbs the request; whichever reload
// completes last wins the snapshot wholesale. On failure the previous
// collection is kept and the list is marked failed so the UI can offer
// a retry.
func (c *Controller) Reload(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.reloading {
		c.mu.Unlock()
		return
	}
	c.reloading = true
	c.listState = ListLoading
	c.mu.Unlock()

	list, err := c.store.List(ctx, c.ownerID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.reloading = false
	if c.closed {
		return
	}
	if err != nil {
		c.listState = ListLoadFailed
		c.push(Notification{Title: "Error", Description: "Failed to load tickets", Severity: SeverityError})
		return
	}
	c.tickets = list
	c.listState = ListLoaded
}

// EnsureLoaded performs the initial load on entering the management
// view. It is a no-op once a load has completed or failed; a failed
// load is retried only by an explicit Reload.
func (c *Controller) EnsureLoaded(ctx context.Context) {
	c.mu.Lock()
	needed := !c.closed && c.listState == ListLoading && !c.reloading
	c.mu.Unlock()
	if needed {
		c.Reload(ctx)
	}
}

// StartCreate opens the form with a fresh default draft.
func (c *Controller) StartCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.draft = models.NewDraft()
	c.fieldErrs = nil
	c.form = FormState{Mode: FormCreating}
}

// StartEdit opens the form populated from a ticket in the current
// snapshot. Editing a ticket that is not in the snapshot is reported,
// not performed.
func (c *Controller) StartEdit(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	for _, t := range c.tickets {
		if t.ID == id {
			c.draft = models.DraftOf(t)
			c.fieldErrs = nil
			c.form = FormState{Mode: FormEditing, TicketID: id}
			return
		}
	}
	c.push(Notification{Title: "Error", Description: "Ticket not found", Severity: SeverityError})
}

// CancelForm discards the draft and hides the form.
func (c *Controller) CancelForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.form = FormState{Mode: FormHidden}
	c.draft = models.NewDraft()
	c.fieldErrs = nil
}

// SetDraft replaces the draft fields. Ignored while the form is hidden
// or a submit is in flight.
func (c *Controller) SetDraft(d models.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.busy || c.form.Mode == FormHidden {
		return
	}
	c.draft = d
}

// Submit validates the draft and, only if it passes, persists it as a
// create or update depending on the form mode. Validation failure
// keeps the form open with the error map set and never touches the
// store. Transport failure keeps the form open with the draft intact so
// the user can retry. An update hitting a vanished ticket closes the
// form and forces a reload to resynchronize.
func (c *Controller) Submit(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.busy || c.form.Mode == FormHidden {
		c.mu.Unlock()
		return
	}
	d, errs := validate.Ticket(c.draft)
	if !errs.OK() {
		c.fieldErrs = errs
		c.mu.Unlock()
		return
	}
	c.fieldErrs = nil
	c.draft = d
	form := c.form
	c.busy = true
	c.mu.Unlock()

	var err error
	if form.Mode == FormCreating {
		_, err = c.store.Create(ctx, c.ownerID, d)
	} else {
		err = c.store.Update(ctx, form.TicketID, c.ownerID, d)
	}

	c.mu.Lock()
	c.busy = false
	if c.closed {
		c.mu.Unlock()
		return
	}
	if err != nil {
		if form.Mode == FormEditing && errors.Is(err, repository.ErrNotFound) {
			// The ticket was deleted from another session; the draft's
			// target row is gone, so drop it and resynchronize.
			c.form = FormState{Mode: FormHidden}
			c.draft = models.NewDraft()
			c.push(Notification{Title: "Error", Description: "This ticket no longer exists", Severity: SeverityError})
			c.mu.Unlock()
			c.Reload(ctx)
			return
		}
		c.push(Notification{Title: "Error", Description: "Failed to save ticket", Severity: SeverityError})
		c.mu.Unlock()
		return
	}
	c.form = FormState{Mode: FormHidden}
	c.draft = models.NewDraft()
	if form.Mode == FormCreating {
		c.push(Notification{Title: "Success", Description: "Ticket created successfully", Severity: SeveritySuccess})
	} else {
		c.push(Notification{Title: "Success", Description: "Ticket updated successfully", Severity: SeveritySuccess})
	}
	c.mu.Unlock()
	c.Reload(ctx)
}

// RequestDelete records the delete target. Nothing is deleted until the
// user confirms; a second request simply replaces the pending target.
func (c *Controller) RequestDelete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.pendingDelete = &DeleteConfirm{TicketID: id}
}

// CancelDelete clears the pending target without touching the store.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = nil
}

// ConfirmDelete deletes the pending target. The confirmation state is
// cleared whether or not the delete succeeds; a failed delete is
// reported, never silently retried.
func (c *Controller) ConfirmDelete(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.busy || c.pendingDelete == nil {
		c.mu.Unlock()
		return
	}
	id := c.pendingDelete.TicketID
	c.pendingDelete = nil
	c.busy = true
	c.mu.Unlock()

	err := c.store.Delete(ctx, id, c.ownerID)

	c.mu.Lock()
	c.busy = false
	if c.closed {
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.push(Notification{Title: "Error", Description: "Failed to delete ticket", Severity: SeverityError})
		c.mu.Unlock()
		return
	}
	c.push(Notification{Title: "Success", Description: "Ticket deleted successfully", Severity: SeveritySuccess})
	c.mu.Unlock()
	c.Reload(ctx)
}

// Close marks the session's identity as gone. Every later operation is
// a no-op, and store calls that complete after Close never mutate
// state.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// push must be called with the mutex held.
func (c *Controller) push(n Notification) {
	c.notices = append(c.notices, n)
	if c.notifier != nil {
		c.notifier.Notify(n)
	}
}
