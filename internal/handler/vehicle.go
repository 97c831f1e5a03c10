package handler

import (
	"net/http"

	"github.com/frotaops/frota/internal/domain"
	"github.com/frotaops/frota/internal/metrics"
	"github.com/frotaops/frota/internal/store"
)

// VehicleHandler handles vehicle CRUD requests.
type VehicleHandler struct {
	store *store.Store
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(st *store.Store) *VehicleHandler {
	return &VehicleHandler{store: st}
}

// HandleList returns all vehicles.
func (h *VehicleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot().Vehicles)
}

// HandleCreate registers a new vehicle.
func (h *VehicleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Plate string `json:"plate"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	v, err := h.store.AddVehicle(r.Context(), req.Name, req.Plate)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// HandleUpdate merges the supplied fields into an existing vehicle.
func (h *VehicleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  *string `json:"name"`
		Plate *string `json:"plate"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	v, err := h.store.UpdateVehicle(r.Context(), r.PathValue("id"), domain.VehicleUpdate{
		Name:  req.Name,
		Plate: req.Plate,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// HandleDelete removes a vehicle and every fueling that references it.
func (h *VehicleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteVehicle(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// HandleStats returns the per-vehicle figures the vehicle list shows.
func (h *VehicleHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	id := r.PathValue("id")
	if _, ok := snap.VehicleByID(id); !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, toEntityStatsDTO(snap, id, metrics.ByVehicle))
}
