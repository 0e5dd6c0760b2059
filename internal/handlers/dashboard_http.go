package handlers

import (
	"context"
	"net/http"

	"github.com/awoyaledolapo/clytix-1/internal/dashboard"
	"github.com/awoyaledolapo/clytix-1/internal/middleware"
	"github.com/awoyaledolapo/clytix-1/internal/repository"
	"github.com/awoyaledolapo/clytix-1/internal/utils"
)

type DashboardHTTP struct {
	store repository.TicketStore
}

func NewDashboardHTTP(store repository.TicketStore) *DashboardHTTP {
	return &DashboardHTTP{store: store}
}

// GET /api/dashboard
// Returns {total, open, in_progress, closed} for the current owner.
func (h *DashboardHTTP) Summary() http.HandlerFunc {
	// Optional store capability: count in SQL instead of fetching the
	// whole collection.
	type counter interface {
		StatusCounts(ctx context.Context, ownerID string) (dashboard.StatusCounts, error)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)

		if cs, ok := h.store.(counter); ok {
			counts, err := cs.StatusCounts(r.Context(), uid)
			if err != nil {
				utils.Error(w, http.StatusInternalServerError, "failed to load statistics")
				return
			}
			utils.JSON(w, http.StatusOK, counts)
			return
		}

		// Fallback for any store: fetch the snapshot and fold it.
		items, err := h.store.List(r.Context(), uid)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "failed to load statistics")
			return
		}
		utils.JSON(w, http.StatusOK, dashboard.Aggregate(items))
	}
}
