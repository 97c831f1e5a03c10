package domain

import "context"

// Snapshot is the complete fleet state at one instant. Snapshots handed out
// by the store are immutable: mutations build a new snapshot and swap it in
// whole, so holders never observe a partial update.
type Snapshot struct {
	Vehicles []Vehicle `json:"vehicles"`
	Drivers  []Driver  `json:"drivers"`
	Fuelings []Fueling `json:"fuelings"`
}

// Clone returns a deep copy with freshly allocated slices.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Vehicles: make([]Vehicle, len(s.Vehicles)),
		Drivers:  make([]Driver, len(s.Drivers)),
		Fuelings: make([]Fueling, len(s.Fuelings)),
	}
	copy(out.Vehicles, s.Vehicles)
	copy(out.Drivers, s.Drivers)
	copy(out.Fuelings, s.Fuelings)
	return out
}

// VehicleByID looks up a vehicle in the snapshot.
func (s Snapshot) VehicleByID(id string) (Vehicle, bool) {
	for _, v := range s.Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return Vehicle{}, false
}

// DriverByID looks up a driver in the snapshot.
func (s Snapshot) DriverByID(id string) (Driver, bool) {
	for _, d := range s.Drivers {
		if d.ID == id {
			return d, true
		}
	}
	return Driver{}, false
}

// FuelingByID looks up a fueling in the snapshot.
func (s Snapshot) FuelingByID(id string) (Fueling, bool) {
	for _, f := range s.Fuelings {
		if f.ID == id {
			return f, true
		}
	}
	return Fueling{}, false
}

// SnapshotSlot is a single named durable slot mirroring the store's state
// across sessions. Load returns ErrNotFound when the slot has never been
// written.
type SnapshotSlot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Database defines lifecycle operations for the underlying database. Each
// implementation owns its own migration files and strategy.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
