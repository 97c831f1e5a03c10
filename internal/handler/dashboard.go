package handler

import (
	"net/http"

	datastar "github.com/starfederation/datastar-go/datastar"

	"github.com/frotaops/frota/internal/domain"
	"github.com/frotaops/frota/internal/store"
)

// latestFuelingCount is how many recent fuelings the dashboard table shows.
const latestFuelingCount = 5

// DashboardHandler serves the dashboard aggregates and their live stream.
type DashboardHandler struct {
	store *store.Store
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(st *store.Store) *DashboardHandler {
	return &DashboardHandler{store: st}
}

// HandleDashboard returns the current dashboard aggregates, recomputed
// from the snapshot on every request.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toDashboardDTO(h.store.Snapshot()))
}

// HandleStream pushes recomputed dashboard signals over SSE whenever the
// store commits a mutation, so the dashboard view never polls.
func (h *DashboardHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	updates, cancel := h.store.Watch()
	defer cancel()

	sse := datastar.NewSSE(w, r)
	push := func(snap domain.Snapshot) error {
		return sse.MarshalAndPatchSignals(toDashboardDTO(snap))
	}

	if err := push(h.store.Snapshot()); err != nil {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := push(snap); err != nil {
				return
			}
		}
	}
}
