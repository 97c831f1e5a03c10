package store

import "github.com/frotaops/frota/internal/domain"

// Seed returns the default dataset used when no durable state exists and
// after a reset. Fresh slices on every call so callers can never alias the
// seed.
func Seed() domain.Snapshot {
	return domain.Snapshot{
		Vehicles: []domain.Vehicle{
			{ID: "1", Name: "Caminhão 1", Plate: "ABC-1234"},
			{ID: "2", Name: "Caminhão 2", Plate: "DEF-5678"},
		},
		Drivers: []domain.Driver{
			{ID: "1", Name: "José", License: "1234567890"},
			{ID: "2", Name: "Maria", License: "0987654321"},
		},
		Fuelings: []domain.Fueling{
			{ID: "1", VehicleID: "1", DriverID: "1", Date: domain.MustDate("2025-10-15"), Liters: 50, Cost: 500},
			{ID: "2", VehicleID: "2", DriverID: "2", Date: domain.MustDate("2025-10-20"), Liters: 60, Cost: 600},
			{ID: "3", VehicleID: "1", DriverID: "1", Date: domain.MustDate("2025-10-25"), Liters: 55, Cost: 550},
		},
	}
}
