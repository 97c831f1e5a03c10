package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"slices"
	"strconv"

	"github.com/frotaops/frota/internal/domain"
)

// Adapter mirrors store snapshots to a durable slot as a single JSON
// document {vehicles, drivers, fuelings}. Loads never fail: an absent,
// unreadable, or structurally invalid slot falls back to the seed dataset
// with a logged warning, so the application always starts.
type Adapter struct {
	slot domain.SnapshotSlot
}

// NewAdapter creates an Adapter over the given durable slot.
func NewAdapter(slot domain.SnapshotSlot) *Adapter {
	return &Adapter{slot: slot}
}

// Load reads and normalizes the durable snapshot. Each collection falls
// back to its seed counterpart individually when missing from the stored
// document.
func (a *Adapter) Load(ctx context.Context) domain.Snapshot {
	seed := Seed()

	data, err := a.slot.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Warn("could not read stored fleet data, using seed dataset", "error", err)
		}
		return seed
	}

	var doc persistedSnapshot
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("stored fleet data is malformed, using seed dataset", "error", err)
		return seed
	}

	snap := seed
	if doc.Vehicles != nil {
		snap.Vehicles = make([]domain.Vehicle, len(*doc.Vehicles))
		for i, v := range *doc.Vehicles {
			snap.Vehicles[i] = domain.Vehicle{ID: string(v.ID), Name: v.Name, Plate: v.Plate}
		}
	}
	if doc.Drivers != nil {
		snap.Drivers = make([]domain.Driver, len(*doc.Drivers))
		for i, d := range *doc.Drivers {
			snap.Drivers[i] = domain.Driver{ID: string(d.ID), Name: d.Name, License: d.License}
		}
	}
	if doc.Fuelings != nil {
		snap.Fuelings = make([]domain.Fueling, len(*doc.Fuelings))
		for i, f := range *doc.Fuelings {
			snap.Fuelings[i] = domain.Fueling{
				ID:        string(f.ID),
				VehicleID: string(f.VehicleID),
				DriverID:  string(f.DriverID),
				Date:      f.Date,
				Liters:    float64(f.Liters),
				Cost:      float64(f.Cost),
			}
		}
	}

	// Per-collection fallback can mix stored entities with seed fuelings
	// (or the reverse). Drop fuelings whose references no longer resolve
	// so every loaded record points at an existing vehicle and driver.
	before := len(snap.Fuelings)
	snap.Fuelings = slices.DeleteFunc(snap.Fuelings, func(f domain.Fueling) bool {
		_, vok := snap.VehicleByID(f.VehicleID)
		_, dok := snap.DriverByID(f.DriverID)
		return !vok || !dok
	})
	if dropped := before - len(snap.Fuelings); dropped > 0 {
		slog.Warn("dropped stored fuelings with unresolvable references", "count", dropped)
	}
	return snap
}

// Save serializes the full snapshot and writes it synchronously. A write
// failure is swallowed with a logged warning; the in-memory store stays
// authoritative and the prior durable state is left untouched.
func (a *Adapter) Save(ctx context.Context, snap domain.Snapshot) {
	data, err := json.Marshal(toPersisted(snap))
	if err != nil {
		slog.Warn("could not serialize fleet snapshot", "error", err)
		return
	}
	if err := a.slot.Save(ctx, data); err != nil {
		slog.Warn("could not persist fleet snapshot, keeping in-memory state", "error", err)
	}
}

// persistedSnapshot is the durable wire format. Collection pointers
// distinguish a missing array from an empty one.
type persistedSnapshot struct {
	Vehicles *[]persistedVehicle `json:"vehicles"`
	Drivers  *[]persistedDriver  `json:"drivers"`
	Fuelings *[]persistedFueling `json:"fuelings"`
}

type persistedVehicle struct {
	ID    flexID `json:"id"`
	Name  string `json:"name"`
	Plate string `json:"plate"`
}

type persistedDriver struct {
	ID      flexID `json:"id"`
	Name    string `json:"name"`
	License string `json:"license"`
}

type persistedFueling struct {
	ID        flexID      `json:"id"`
	VehicleID flexID      `json:"vehicleId"`
	DriverID  flexID      `json:"driverId"`
	Date      domain.Date `json:"date"`
	Liters    flexNumber  `json:"liters"`
	Cost      flexNumber  `json:"cost"`
}

func toPersisted(snap domain.Snapshot) persistedSnapshot {
	vehicles := make([]persistedVehicle, len(snap.Vehicles))
	for i, v := range snap.Vehicles {
		vehicles[i] = persistedVehicle{ID: flexID(v.ID), Name: v.Name, Plate: v.Plate}
	}
	drivers := make([]persistedDriver, len(snap.Drivers))
	for i, d := range snap.Drivers {
		drivers[i] = persistedDriver{ID: flexID(d.ID), Name: d.Name, License: d.License}
	}
	fuelings := make([]persistedFueling, len(snap.Fuelings))
	for i, f := range snap.Fuelings {
		fuelings[i] = persistedFueling{
			ID:        flexID(f.ID),
			VehicleID: flexID(f.VehicleID),
			DriverID:  flexID(f.DriverID),
			Date:      f.Date,
			Liters:    flexNumber(f.Liters),
			Cost:      flexNumber(f.Cost),
		}
	}
	return persistedSnapshot{Vehicles: &vehicles, Drivers: &drivers, Fuelings: &fuelings}
}

// flexID accepts a JSON string or number and canonicalizes it to a string.
// Early snapshots carried numeric ids.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexID(n.String())
		return nil
	}
	*f = ""
	return nil
}

// flexNumber accepts a JSON number or numeric string. Anything else
// (including null) normalizes to NaN, which serializes back as null and is
// surfaced as 0 by the aggregates.
type flexNumber float64

func (f flexNumber) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = flexNumber(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*f = flexNumber(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, perr := strconv.ParseFloat(s, 64); perr == nil {
			*f = flexNumber(parsed)
			return nil
		}
	}
	*f = flexNumber(math.NaN())
	return nil
}
