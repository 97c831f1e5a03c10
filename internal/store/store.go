// Package store holds the authoritative in-memory fleet state. Every
// mutation validates its input first, then builds a new snapshot and swaps
// it in whole, mirrors it to durable storage, and notifies watchers.
// Snapshots handed out are never mutated afterwards, so readers observe
// either the pre- or post-mutation state, never a partial one.
package store

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/frotaops/frota/internal/domain"
)

// Store is the single source of truth for vehicles, drivers, and fuelings.
type Store struct {
	mu      sync.RWMutex
	snap    domain.Snapshot
	adapter *Adapter

	watchMu   sync.Mutex
	watchers  map[int]chan domain.Snapshot
	nextWatch int
}

// Open loads the durable snapshot through the adapter and returns a store
// seeded with it.
func Open(ctx context.Context, adapter *Adapter) *Store {
	return &Store{
		snap:     adapter.Load(ctx),
		adapter:  adapter,
		watchers: make(map[int]chan domain.Snapshot),
	}
}

// Snapshot returns the current immutable snapshot.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Watch registers an observer for updated-snapshot notifications. Delivery
// is non-blocking: a slow watcher only ever keeps the newest snapshot. The
// returned cancel function unregisters the watcher and closes the channel.
func (s *Store) Watch() (<-chan domain.Snapshot, func()) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	id := s.nextWatch
	s.nextWatch++
	ch := make(chan domain.Snapshot, 1)
	s.watchers[id] = ch

	return ch, func() {
		s.watchMu.Lock()
		defer s.watchMu.Unlock()
		if c, ok := s.watchers[id]; ok {
			delete(s.watchers, id)
			close(c)
		}
	}
}

// AddVehicle creates a vehicle with a freshly generated id.
func (s *Store) AddVehicle(ctx context.Context, name, plate string) (domain.Vehicle, error) {
	name = strings.TrimSpace(name)
	plate = strings.TrimSpace(plate)
	if name == "" || plate == "" {
		return domain.Vehicle{}, fmt.Errorf("%w: name and plate are required", domain.ErrInvalidInput)
	}

	v := domain.Vehicle{ID: uuid.NewString(), Name: name, Plate: plate}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.snap.Clone()
	next.Vehicles = append(next.Vehicles, v)
	s.commit(ctx, next)
	return v, nil
}

// UpdateVehicle merges the given fields into the matching vehicle.
func (s *Store) UpdateVehicle(ctx context.Context, id string, upd domain.VehicleUpdate) (domain.Vehicle, error) {
	if upd.Name != nil {
		t := strings.TrimSpace(*upd.Name)
		if t == "" {
			return domain.Vehicle{}, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidInput)
		}
		upd.Name = &t
	}
	if upd.Plate != nil {
		t := strings.TrimSpace(*upd.Plate)
		if t == "" {
			return domain.Vehicle{}, fmt.Errorf("%w: plate must not be empty", domain.ErrInvalidInput)
		}
		upd.Plate = &t
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.snap.Clone()
	for i := range next.Vehicles {
		if next.Vehicles[i].ID != id {
			continue
		}
		if upd.Name != nil {
			next.Vehicles[i].Name = *upd.Name
		}
		if upd.Plate != nil {
			next.Vehicles[i].Plate = *upd.Plate
		}
		v := next.Vehicles[i]
		s.commit(ctx, next)
		return v, nil
	}
	return domain.Vehicle{}, domain.ErrNotFound
}

// DeleteVehicle removes the vehicle and cascades, deleting every fueling
// that references it. Deleting an unknown id is a no-op.
func (s *Store) DeleteVehicle(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snap.VehicleByID(id); !ok {
		return
	}
	next := s.snap.Clone()
	next.Vehicles = slices.DeleteFunc(next.Vehicles, func(v domain.Vehicle) bool { return v.ID == id })
	next.Fuelings = slices.DeleteFunc(next.Fuelings, func(f domain.Fueling) bool { return f.VehicleID == id })
	s.commit(ctx, next)
}

// AddDriver creates a driver with a freshly generated id.
func (s *Store) AddDriver(ctx context.Context, name, license string) (domain.Driver, error) {
	name = strings.TrimSpace(name)
	license = strings.TrimSpace(license)
	if name == "" || license == "" {
		return domain.Driver{}, fmt.Errorf("%w: name and license are required", domain.ErrInvalidInput)
	}

	d := domain.Driver{ID: uuid.NewString(), Name: name, License: license}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.snap.Clone()
	next.Drivers = append(next.Drivers, d)
	s.commit(ctx, next)
	return d, nil
}

// UpdateDriver merges the given fields into the matching driver.
func (s *Store) UpdateDriver(ctx context.Context, id string, upd domain.DriverUpdate) (domain.Driver, error) {
	if upd.Name != nil {
		t := strings.TrimSpace(*upd.Name)
		if t == "" {
			return domain.Driver{}, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidInput)
		}
		upd.Name = &t
	}
	if upd.License != nil {
		t := strings.TrimSpace(*upd.License)
		if t == "" {
			return domain.Driver{}, fmt.Errorf("%w: license must not be empty", domain.ErrInvalidInput)
		}
		upd.License = &t
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.snap.Clone()
	for i := range next.Drivers {
		if next.Drivers[i].ID != id {
			continue
		}
		if upd.Name != nil {
			next.Drivers[i].Name = *upd.Name
		}
		if upd.License != nil {
			next.Drivers[i].License = *upd.License
		}
		d := next.Drivers[i]
		s.commit(ctx, next)
		return d, nil
	}
	return domain.Driver{}, domain.ErrNotFound
}

// DeleteDriver removes the driver and cascades, deleting every fueling
// that references it. Deleting an unknown id is a no-op.
func (s *Store) DeleteDriver(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snap.DriverByID(id); !ok {
		return
	}
	next := s.snap.Clone()
	next.Drivers = slices.DeleteFunc(next.Drivers, func(d domain.Driver) bool { return d.ID == id })
	next.Fuelings = slices.DeleteFunc(next.Fuelings, func(f domain.Fueling) bool { return f.DriverID == id })
	s.commit(ctx, next)
}

// AddFueling creates a fueling record from raw form values. All fields are
// validated before any state is written: the referenced vehicle and driver
// must exist, the date must be a valid calendar date, and liters and cost
// must parse as non-negative numbers.
func (s *Store) AddFueling(ctx context.Context, in domain.FuelingInput) (domain.Fueling, error) {
	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return domain.Fueling{}, err
	}
	liters, err := parseAmount("liters", in.Liters)
	if err != nil {
		return domain.Fueling{}, err
	}
	cost, err := parseAmount("cost", in.Cost)
	if err != nil {
		return domain.Fueling{}, err
	}
	vehicleID := strings.TrimSpace(in.VehicleID)
	driverID := strings.TrimSpace(in.DriverID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snap.VehicleByID(vehicleID); !ok {
		return domain.Fueling{}, fmt.Errorf("%w: vehicle %q does not exist", domain.ErrInvalidInput, vehicleID)
	}
	if _, ok := s.snap.DriverByID(driverID); !ok {
		return domain.Fueling{}, fmt.Errorf("%w: driver %q does not exist", domain.ErrInvalidInput, driverID)
	}

	f := domain.Fueling{
		ID:        uuid.NewString(),
		VehicleID: vehicleID,
		DriverID:  driverID,
		Date:      date,
		Liters:    liters,
		Cost:      cost,
	}
	next := s.snap.Clone()
	next.Fuelings = append(next.Fuelings, f)
	s.commit(ctx, next)
	return f, nil
}

// UpdateFueling merges the given fields into the matching fueling,
// re-validating references, date, and numeric fields when present.
func (s *Store) UpdateFueling(ctx context.Context, id string, upd domain.FuelingUpdate) (domain.Fueling, error) {
	var (
		date         domain.Date
		liters, cost float64
		err          error
	)
	if upd.Date != nil {
		if date, err = domain.ParseDate(*upd.Date); err != nil {
			return domain.Fueling{}, err
		}
	}
	if upd.Liters != nil {
		if liters, err = parseAmount("liters", *upd.Liters); err != nil {
			return domain.Fueling{}, err
		}
	}
	if upd.Cost != nil {
		if cost, err = parseAmount("cost", *upd.Cost); err != nil {
			return domain.Fueling{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if upd.VehicleID != nil {
		if _, ok := s.snap.VehicleByID(strings.TrimSpace(*upd.VehicleID)); !ok {
			return domain.Fueling{}, fmt.Errorf("%w: vehicle %q does not exist", domain.ErrInvalidInput, *upd.VehicleID)
		}
	}
	if upd.DriverID != nil {
		if _, ok := s.snap.DriverByID(strings.TrimSpace(*upd.DriverID)); !ok {
			return domain.Fueling{}, fmt.Errorf("%w: driver %q does not exist", domain.ErrInvalidInput, *upd.DriverID)
		}
	}

	next := s.snap.Clone()
	for i := range next.Fuelings {
		if next.Fuelings[i].ID != id {
			continue
		}
		if upd.VehicleID != nil {
			next.Fuelings[i].VehicleID = strings.TrimSpace(*upd.VehicleID)
		}
		if upd.DriverID != nil {
			next.Fuelings[i].DriverID = strings.TrimSpace(*upd.DriverID)
		}
		if upd.Date != nil {
			next.Fuelings[i].Date = date
		}
		if upd.Liters != nil {
			next.Fuelings[i].Liters = liters
		}
		if upd.Cost != nil {
			next.Fuelings[i].Cost = cost
		}
		f := next.Fuelings[i]
		s.commit(ctx, next)
		return f, nil
	}
	return domain.Fueling{}, domain.ErrNotFound
}

// DeleteFueling removes the record. Fuelings are leaf entities, so there
// is no cascade. Deleting an unknown id is a no-op.
func (s *Store) DeleteFueling(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snap.FuelingByID(id); !ok {
		return
	}
	next := s.snap.Clone()
	next.Fuelings = slices.DeleteFunc(next.Fuelings, func(f domain.Fueling) bool { return f.ID == id })
	s.commit(ctx, next)
}

// ResetToDefaults replaces the whole snapshot with the seed dataset.
func (s *Store) ResetToDefaults(ctx context.Context) domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(ctx, Seed())
	return s.snap
}

// commit replaces the snapshot, mirrors it to durable storage, and
// notifies watchers. Callers must hold mu.
func (s *Store) commit(ctx context.Context, next domain.Snapshot) {
	s.snap = next
	if s.adapter != nil {
		s.adapter.Save(ctx, next)
	}
	s.notify(next)
}

func (s *Store) notify(snap domain.Snapshot) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	for _, ch := range s.watchers {
		select {
		case ch <- snap:
		default:
			// Replace the stale pending snapshot with the newest one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func parseAmount(field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, field)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", domain.ErrInvalidInput, field, raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, field)
	}
	return v, nil
}
