package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/awoyaledolapo/clytix-1/internal/middleware"
	"github.com/awoyaledolapo/clytix-1/internal/models"
	"github.com/awoyaledolapo/clytix-1/internal/tickets"
	"github.com/awoyaledolapo/clytix-1/internal/utils"
)

// SessionHTTP drives the per-user ticket session. Every endpoint
// applies one controller transition and returns the resulting state
// snapshot, so the SPA renders whatever the state machine says,
// including the drained notification queue.
type SessionHTTP struct {
	sessions *tickets.Registry
}

func NewSessionHTTP(sessions *tickets.Registry) *SessionHTTP {
	return &SessionHTTP{sessions: sessions}
}

func (h *SessionHTTP) controller(r *http.Request) *tickets.Controller {
	uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
	return h.sessions.Get(uid)
}

// GET /api/session returns the snapshot, performing the initial load
// on first call.
func (h *SessionHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := h.controller(r)
		c.EnsureLoaded(r.Context())
		utils.JSON(w, http.StatusOK, c.Snapshot())
	}
}

// POST /api/session/reload is the explicit refetch (also the retry path
// after a failed load).
func (h *SessionHTTP) Reload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := h.controller(r)
		c.Reload(r.Context())
		utils.JSON(w, http.StatusOK, c.Snapshot())
	}
}

// POST /api/session/form/new
func (h *SessionHTTP) FormNew() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := h.controller(r)
		c.StartCreate()
		utils.JSON(w, http.StatusOK, c.Snapshot())
	}
}

// POST /api/session/form/edit/{id}
func (h *SessionHTTP) FormEdit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		c := h.controller(r)
		c.StartEdit(id)
		utils.JSON(w, http.StatusOK, c.Snapshot())
	}
}

// POST /api/session/form/cancel
func (h *SessionHTTP) FormCancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := h.controller(r)
		c.CancelForm()
		utils.JSON(w, http.StatusOK, c.Snapshot())
	}
}

// PUT /api/session/draft replaces the draft fields wholesale.
func (h *SessionHTTP) SetDraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var d models.Draft
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		c := h.controller(r)
		c.SetDraft(d)
		utils.JSON(w, http.StatusOK, c.Snapshot())
	}
}

// POST /api/session/submit validates, then creates or updates.
func (h *SessionHTTP) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := h.controller(r)
		c.Submit(r.Context())
		utils.JSON(w, http.StatusOK, c.Snapshot())
	}
}

// POST /api/session/delete/{id} is the first phase of the confirm flow.
func (h *SessionHTTP) RequestDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		c := h.controller(r)
		c.RequestDelete(id)
		utils.JSON(w, http.StatusOK, c.Snapshot())
	}
}

// POST /api/session/delete/confirm
func (h *SessionHTTP) ConfirmDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := h.controller(r)
		c.ConfirmDelete(r.Context())
		utils.JSON(w, http.StatusOK, c.Snapshot())
	}
}

// POST /api/session/delete/cancel
func (h *SessionHTTP) CancelDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := h.controller(r)
		c.CancelDelete()
		utils.JSON(w, http.StatusOK, c.Snapshot())
	}
}
