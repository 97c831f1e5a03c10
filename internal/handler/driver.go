package handler

import (
	"net/http"

	"github.com/frotaops/frota/internal/domain"
	"github.com/frotaops/frota/internal/metrics"
	"github.com/frotaops/frota/internal/store"
)

// DriverHandler handles driver CRUD requests.
type DriverHandler struct {
	store *store.Store
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(st *store.Store) *DriverHandler {
	return &DriverHandler{store: st}
}

// HandleList returns all drivers.
func (h *DriverHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot().Drivers)
}

// HandleCreate registers a new driver.
func (h *DriverHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		License string `json:"license"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	d, err := h.store.AddDriver(r.Context(), req.Name, req.License)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// HandleUpdate merges the supplied fields into an existing driver.
func (h *DriverHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    *string `json:"name"`
		License *string `json:"license"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	d, err := h.store.UpdateDriver(r.Context(), r.PathValue("id"), domain.DriverUpdate{
		Name:    req.Name,
		License: req.License,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleDelete removes a driver and every fueling that references them.
func (h *DriverHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteDriver(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// HandleStats returns the per-driver figures the driver list shows.
func (h *DriverHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	id := r.PathValue("id")
	if _, ok := snap.DriverByID(id); !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, toEntityStatsDTO(snap, id, metrics.ByDriver))
}
