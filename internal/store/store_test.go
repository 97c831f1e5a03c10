package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/frotaops/frota/internal/domain"
	"github.com/frotaops/frota/internal/store"
)

// memSlot is an in-memory domain.SnapshotSlot for tests.
type memSlot struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	saveErr error
	loadErr error
}

func (m *memSlot) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.data == nil {
		return nil, domain.ErrNotFound
	}
	return m.data, nil
}

func (m *memSlot) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

func newTestStore(t *testing.T) (*store.Store, *memSlot) {
	t.Helper()
	slot := &memSlot{}
	return store.Open(context.Background(), store.NewAdapter(slot)), slot
}

func TestOpen_EmptySlotSeeds(t *testing.T) {
	st, _ := newTestStore(t)
	snap := st.Snapshot()

	if len(snap.Vehicles) != 2 || len(snap.Drivers) != 2 || len(snap.Fuelings) != 3 {
		t.Fatalf("expected seed counts 2/2/3, got %d/%d/%d",
			len(snap.Vehicles), len(snap.Drivers), len(snap.Fuelings))
	}
}

func TestAddVehicle(t *testing.T) {
	st, slot := newTestStore(t)
	ctx := context.Background()

	v, err := st.AddVehicle(ctx, "  Caminhão 3  ", "GHI-9012")
	if err != nil {
		t.Fatalf("AddVehicle: %v", err)
	}
	if v.ID == "" {
		t.Fatal("expected a generated id")
	}
	if v.Name != "Caminhão 3" {
		t.Fatalf("expected trimmed name, got %q", v.Name)
	}
	if got, ok := st.Snapshot().VehicleByID(v.ID); !ok || got != v {
		t.Fatalf("vehicle not in snapshot: %+v", got)
	}
	if slot.saves != 1 {
		t.Fatalf("expected 1 persistence write, got %d", slot.saves)
	}
}

func TestAddVehicle_EmptyFields(t *testing.T) {
	st, slot := newTestStore(t)
	ctx := context.Background()

	cases := []struct{ name, plate string }{
		{"", "ABC-0000"},
		{"   ", "ABC-0000"},
		{"Truck", ""},
		{"Truck", "  "},
	}
	for _, tc := range cases {
		if _, err := st.AddVehicle(ctx, tc.name, tc.plate); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("AddVehicle(%q, %q): expected ErrInvalidInput, got %v", tc.name, tc.plate, err)
		}
	}
	if slot.saves != 0 {
		t.Fatalf("rejected mutations must not persist, got %d writes", slot.saves)
	}
}

func TestUpdateVehicle_PartialMerge(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	plate := "ZZZ-0001"
	v, err := st.UpdateVehicle(ctx, "1", domain.VehicleUpdate{Plate: &plate})
	if err != nil {
		t.Fatalf("UpdateVehicle: %v", err)
	}
	if v.Plate != "ZZZ-0001" {
		t.Fatalf("expected updated plate, got %q", v.Plate)
	}
	if v.Name != "Caminhão 1" {
		t.Fatalf("name must be untouched, got %q", v.Name)
	}
}

func TestUpdateVehicle_Unknown(t *testing.T) {
	st, _ := newTestStore(t)

	name := "x"
	if _, err := st.UpdateVehicle(context.Background(), "nope", domain.VehicleUpdate{Name: &name}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateVehicle_EmptyField(t *testing.T) {
	st, _ := newTestStore(t)

	empty := "   "
	if _, err := st.UpdateVehicle(context.Background(), "1", domain.VehicleUpdate{Name: &empty}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if v, _ := st.Snapshot().VehicleByID("1"); v.Name != "Caminhão 1" {
		t.Fatalf("rejected update must not change state, got %q", v.Name)
	}
}

func TestDeleteVehicle_Cascades(t *testing.T) {
	st, _ := newTestStore(t)

	// Seed vehicle "1" is referenced by fuelings "1" and "3".
	st.DeleteVehicle(context.Background(), "1")

	snap := st.Snapshot()
	if _, ok := snap.VehicleByID("1"); ok {
		t.Fatal("vehicle still present after delete")
	}
	if len(snap.Fuelings) != 1 || snap.Fuelings[0].ID != "2" {
		t.Fatalf("expected only fueling 2 to survive, got %+v", snap.Fuelings)
	}
	for _, f := range snap.Fuelings {
		if _, ok := snap.VehicleByID(f.VehicleID); !ok {
			t.Fatalf("dangling vehicle reference %q", f.VehicleID)
		}
	}
}

func TestDeleteDriver_CascadesExactly(t *testing.T) {
	st, _ := newTestStore(t)

	// Seed driver "2" is referenced only by fueling "2".
	st.DeleteDriver(context.Background(), "2")

	snap := st.Snapshot()
	if len(snap.Fuelings) != 2 {
		t.Fatalf("expected 2 fuelings to survive, got %d", len(snap.Fuelings))
	}
	for _, f := range snap.Fuelings {
		if f.DriverID == "2" {
			t.Fatalf("fueling %s still references deleted driver", f.ID)
		}
	}
}

func TestDelete_UnknownIDIsNoOp(t *testing.T) {
	st, slot := newTestStore(t)
	ctx := context.Background()

	st.DeleteVehicle(ctx, "missing")
	st.DeleteDriver(ctx, "missing")
	st.DeleteFueling(ctx, "missing")

	snap := st.Snapshot()
	if len(snap.Vehicles) != 2 || len(snap.Drivers) != 2 || len(snap.Fuelings) != 3 {
		t.Fatal("no-op deletes must not change the snapshot")
	}
	if slot.saves != 0 {
		t.Fatalf("no-op deletes must not persist, got %d writes", slot.saves)
	}
}

func TestAddFueling(t *testing.T) {
	st, _ := newTestStore(t)

	f, err := st.AddFueling(context.Background(), domain.FuelingInput{
		VehicleID: "2",
		DriverID:  "1",
		Date:      "2025-11-01",
		Liters:    "42.5",
		Cost:      "412.90",
	})
	if err != nil {
		t.Fatalf("AddFueling: %v", err)
	}
	if f.Liters != 42.5 || f.Cost != 412.90 {
		t.Fatalf("unexpected parsed amounts: %+v", f)
	}
	if f.Date.String() != "2025-11-01" {
		t.Fatalf("unexpected date: %s", f.Date)
	}
	if len(st.Snapshot().Fuelings) != 4 {
		t.Fatal("fueling not appended")
	}
}

func TestAddFueling_Invalid(t *testing.T) {
	st, slot := newTestStore(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   domain.FuelingInput
	}{
		{"unknown vehicle", domain.FuelingInput{VehicleID: "99", DriverID: "1", Date: "2025-11-01", Liters: "10", Cost: "100"}},
		{"unknown driver", domain.FuelingInput{VehicleID: "1", DriverID: "99", Date: "2025-11-01", Liters: "10", Cost: "100"}},
		{"missing date", domain.FuelingInput{VehicleID: "1", DriverID: "1", Liters: "10", Cost: "100"}},
		{"bad date", domain.FuelingInput{VehicleID: "1", DriverID: "1", Date: "01/11/2025", Liters: "10", Cost: "100"}},
		{"non-numeric liters", domain.FuelingInput{VehicleID: "1", DriverID: "1", Date: "2025-11-01", Liters: "abc", Cost: "100"}},
		{"negative liters", domain.FuelingInput{VehicleID: "1", DriverID: "1", Date: "2025-11-01", Liters: "-5", Cost: "100"}},
		{"missing cost", domain.FuelingInput{VehicleID: "1", DriverID: "1", Date: "2025-11-01", Liters: "10"}},
		{"negative cost", domain.FuelingInput{VehicleID: "1", DriverID: "1", Date: "2025-11-01", Liters: "10", Cost: "-1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := st.AddFueling(ctx, tc.in); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	if len(st.Snapshot().Fuelings) != 3 {
		t.Fatal("rejected fuelings must leave the snapshot unchanged")
	}
	if slot.saves != 0 {
		t.Fatalf("rejected mutations must not persist, got %d writes", slot.saves)
	}
}

func TestUpdateFueling_Revalidates(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	bad := "xyz"
	if _, err := st.UpdateFueling(ctx, "1", domain.FuelingUpdate{Liters: &bad}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	badRef := "99"
	if _, err := st.UpdateFueling(ctx, "1", domain.FuelingUpdate{VehicleID: &badRef}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for dangling reference, got %v", err)
	}

	liters := "70"
	f, err := st.UpdateFueling(ctx, "1", domain.FuelingUpdate{Liters: &liters})
	if err != nil {
		t.Fatalf("UpdateFueling: %v", err)
	}
	if f.Liters != 70 {
		t.Fatalf("expected liters 70, got %v", f.Liters)
	}
	if f.Cost != 500 {
		t.Fatalf("cost must be untouched, got %v", f.Cost)
	}
}

func TestCascade_NoDanglingAfterSequence(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	v, err := st.AddVehicle(ctx, "Van", "VAN-0001")
	if err != nil {
		t.Fatalf("AddVehicle: %v", err)
	}
	if _, err := st.AddFueling(ctx, domain.FuelingInput{
		VehicleID: v.ID, DriverID: "1", Date: "2025-12-01", Liters: "20", Cost: "200",
	}); err != nil {
		t.Fatalf("AddFueling: %v", err)
	}

	st.DeleteVehicle(ctx, v.ID)
	st.DeleteVehicle(ctx, "2")

	snap := st.Snapshot()
	for _, f := range snap.Fuelings {
		if _, ok := snap.VehicleByID(f.VehicleID); !ok {
			t.Fatalf("fueling %s has dangling vehicle reference %q", f.ID, f.VehicleID)
		}
		if _, ok := snap.DriverByID(f.DriverID); !ok {
			t.Fatalf("fueling %s has dangling driver reference %q", f.ID, f.DriverID)
		}
	}
}

func TestResetToDefaults(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := st.AddVehicle(ctx, "Extra", "EXT-0001"); err != nil {
		t.Fatalf("AddVehicle: %v", err)
	}
	st.DeleteDriver(ctx, "1")

	snap := st.ResetToDefaults(ctx)
	if len(snap.Vehicles) != 2 || len(snap.Drivers) != 2 || len(snap.Fuelings) != 3 {
		t.Fatalf("expected seed counts after reset, got %d/%d/%d",
			len(snap.Vehicles), len(snap.Drivers), len(snap.Fuelings))
	}
}

func TestWatch_NotifiesOnMutation(t *testing.T) {
	st, _ := newTestStore(t)

	updates, cancel := st.Watch()
	defer cancel()

	if _, err := st.AddVehicle(context.Background(), "Watched", "WAT-0001"); err != nil {
		t.Fatalf("AddVehicle: %v", err)
	}

	snap := <-updates
	if len(snap.Vehicles) != 3 {
		t.Fatalf("expected notified snapshot with 3 vehicles, got %d", len(snap.Vehicles))
	}
}

func TestWatch_CancelClosesChannel(t *testing.T) {
	st, _ := newTestStore(t)

	updates, cancel := st.Watch()
	cancel()
	if _, ok := <-updates; ok {
		t.Fatal("expected channel to be closed after cancel")
	}

	// A mutation after cancel must not panic on the closed channel.
	if _, err := st.AddVehicle(context.Background(), "After", "AFT-0001"); err != nil {
		t.Fatalf("AddVehicle: %v", err)
	}
}

func TestSaveFailure_StoreStaysAuthoritative(t *testing.T) {
	st, slot := newTestStore(t)
	slot.saveErr = errors.New("disk full")

	v, err := st.AddVehicle(context.Background(), "Unsaved", "UNS-0001")
	if err != nil {
		t.Fatalf("AddVehicle must succeed despite persistence failure: %v", err)
	}
	if _, ok := st.Snapshot().VehicleByID(v.ID); !ok {
		t.Fatal("in-memory snapshot must keep the mutation")
	}
	if slot.data != nil {
		t.Fatal("prior durable state must be untouched")
	}
}
