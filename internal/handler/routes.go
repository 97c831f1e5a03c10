package handler

import (
	"net/http"

	"github.com/frotaops/frota/internal/store"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Mutating routes
// share a per-client write rate limit.
func RegisterRoutes(mux *http.ServeMux, st *store.Store) {
	vehicles := NewVehicleHandler(st)
	drivers := NewDriverHandler(st)
	fuelings := NewFuelingHandler(st)
	dashboard := NewDashboardHandler(st)
	snapshot := NewSnapshotHandler(st)
	export := NewExportHandler(st)

	// Generous for a single admin; stops accidental scripted hammering.
	writes := NewTokenBucket(5, 20)
	limited := func(h http.HandlerFunc) http.HandlerFunc {
		return RateLimit(writes, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("GET /api/snapshot", snapshot.HandleGet)
	mux.HandleFunc("POST /api/reset", limited(snapshot.HandleReset))

	mux.HandleFunc("GET /api/vehicles", vehicles.HandleList)
	mux.HandleFunc("POST /api/vehicles", limited(vehicles.HandleCreate))
	mux.HandleFunc("PUT /api/vehicles/{id}", limited(vehicles.HandleUpdate))
	mux.HandleFunc("DELETE /api/vehicles/{id}", limited(vehicles.HandleDelete))
	mux.HandleFunc("GET /api/vehicles/{id}/stats", vehicles.HandleStats)

	mux.HandleFunc("GET /api/drivers", drivers.HandleList)
	mux.HandleFunc("POST /api/drivers", limited(drivers.HandleCreate))
	mux.HandleFunc("PUT /api/drivers/{id}", limited(drivers.HandleUpdate))
	mux.HandleFunc("DELETE /api/drivers/{id}", limited(drivers.HandleDelete))
	mux.HandleFunc("GET /api/drivers/{id}/stats", drivers.HandleStats)

	mux.HandleFunc("GET /api/fuelings", fuelings.HandleList)
	mux.HandleFunc("POST /api/fuelings", limited(fuelings.HandleCreate))
	mux.HandleFunc("PUT /api/fuelings/{id}", limited(fuelings.HandleUpdate))
	mux.HandleFunc("DELETE /api/fuelings/{id}", limited(fuelings.HandleDelete))

	mux.HandleFunc("GET /api/dashboard", dashboard.HandleDashboard)
	mux.HandleFunc("GET /api/dashboard/stream", dashboard.HandleStream)

	mux.HandleFunc("GET /export/abastecimentos.csv", export.HandleCSV)
}
