package handler

import (
	"net/http"

	"github.com/frotaops/frota/internal/store"
)

// SnapshotHandler exposes the whole fleet state and the reset operation.
type SnapshotHandler struct {
	store *store.Store
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(st *store.Store) *SnapshotHandler {
	return &SnapshotHandler{store: st}
}

// HandleGet returns the full current snapshot.
func (h *SnapshotHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toSnapshotDTO(h.store.Snapshot()))
}

// HandleReset replaces the whole snapshot with the seed dataset.
func (h *SnapshotHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toSnapshotDTO(h.store.ResetToDefaults(r.Context())))
}
