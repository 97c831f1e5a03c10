package handler

import (
	"net/http"

	"github.com/frotaops/frota/internal/domain"
	"github.com/frotaops/frota/internal/store"
)

// FuelingHandler handles fueling CRUD requests.
type FuelingHandler struct {
	store *store.Store
}

// NewFuelingHandler creates a new FuelingHandler.
func NewFuelingHandler(st *store.Store) *FuelingHandler {
	return &FuelingHandler{store: st}
}

// HandleList returns all fuelings with vehicle and driver names resolved.
func (h *FuelingHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	writeJSON(w, http.StatusOK, toFuelingDTOs(snap, snap.Fuelings))
}

// HandleCreate registers a new fueling. Values pass through to the store
// as raw form strings; all validation happens there, before any state is
// written.
func (h *FuelingHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VehicleID field `json:"vehicleId"`
		DriverID  field `json:"driverId"`
		Date      field `json:"date"`
		Liters    field `json:"liters"`
		Cost      field `json:"cost"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	f, err := h.store.AddFueling(r.Context(), domain.FuelingInput{
		VehicleID: string(req.VehicleID),
		DriverID:  string(req.DriverID),
		Date:      string(req.Date),
		Liters:    string(req.Liters),
		Cost:      string(req.Cost),
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toFuelingDTO(h.store.Snapshot(), f))
}

// HandleUpdate merges the supplied fields into an existing fueling.
func (h *FuelingHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VehicleID *field `json:"vehicleId"`
		DriverID  *field `json:"driverId"`
		Date      *field `json:"date"`
		Liters    *field `json:"liters"`
		Cost      *field `json:"cost"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	f, err := h.store.UpdateFueling(r.Context(), r.PathValue("id"), domain.FuelingUpdate{
		VehicleID: (*string)(req.VehicleID),
		DriverID:  (*string)(req.DriverID),
		Date:      (*string)(req.Date),
		Liters:    (*string)(req.Liters),
		Cost:      (*string)(req.Cost),
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFuelingDTO(h.store.Snapshot(), f))
}

// HandleDelete removes a fueling record.
func (h *FuelingHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteFueling(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}
