// Package metrics computes read-only aggregates over a fleet snapshot.
// Every function is a pure transform of its input; nothing is cached and
// nothing is mutated, so results are always consistent with the snapshot
// they were computed from.
package metrics

import (
	"math"
	"sort"

	"github.com/frotaops/frota/internal/domain"
)

// FleetTotals summarizes the whole snapshot.
type FleetTotals struct {
	VehicleCount        int     `json:"vehicleCount"`
	DriverCount         int     `json:"driverCount"`
	FuelingCount        int     `json:"fuelingCount"`
	TotalCost           float64 `json:"totalCost"`
	TotalLiters         float64 `json:"totalLiters"`
	AverageCostPerLiter float64 `json:"averageCostPerLiter"`
}

// Totals returns entity counts and fuel cost/volume sums. The average cost
// per liter is 0 when no liters were recorded.
func Totals(s domain.Snapshot) FleetTotals {
	t := FleetTotals{
		VehicleCount: len(s.Vehicles),
		DriverCount:  len(s.Drivers),
		FuelingCount: len(s.Fuelings),
	}
	for _, f := range s.Fuelings {
		t.TotalCost += num(f.Cost)
		t.TotalLiters += num(f.Liters)
	}
	if t.TotalLiters > 0 {
		t.AverageCostPerLiter = t.TotalCost / t.TotalLiters
	}
	return t
}

// VehicleConsumption aggregates fuelings for one vehicle.
type VehicleConsumption struct {
	VehicleID string  `json:"vehicleId"`
	Name      string  `json:"name"`
	Liters    float64 `json:"liters"`
	Cost      float64 `json:"cost"`
}

// ConsumptionByVehicle sums liters and cost per vehicle, in snapshot order.
// Vehicles without fuelings are included with zero sums.
func ConsumptionByVehicle(s domain.Snapshot) []VehicleConsumption {
	out := make([]VehicleConsumption, len(s.Vehicles))
	for i, v := range s.Vehicles {
		out[i] = VehicleConsumption{VehicleID: v.ID, Name: v.Name}
		for _, f := range s.Fuelings {
			if f.VehicleID == v.ID {
				out[i].Liters += num(f.Liters)
				out[i].Cost += num(f.Cost)
			}
		}
	}
	return out
}

// DriverSummary aggregates fuelings for one driver.
type DriverSummary struct {
	DriverID string  `json:"driverId"`
	Name     string  `json:"name"`
	Liters   float64 `json:"liters"`
	Cost     float64 `json:"cost"`
}

// SummaryByDriver sums liters and cost per driver, in snapshot order.
// Drivers without fuelings are included with zero sums, mirroring
// ConsumptionByVehicle.
func SummaryByDriver(s domain.Snapshot) []DriverSummary {
	out := make([]DriverSummary, len(s.Drivers))
	for i, d := range s.Drivers {
		out[i] = DriverSummary{DriverID: d.ID, Name: d.Name}
		for _, f := range s.Fuelings {
			if f.DriverID == d.ID {
				out[i].Liters += num(f.Liters)
				out[i].Cost += num(f.Cost)
			}
		}
	}
	return out
}

// LatestFuelings returns the n most recent fuelings, descending by date.
// Ties keep their original insertion order.
func LatestFuelings(s domain.Snapshot, n int) []domain.Fueling {
	if n <= 0 {
		return nil
	}
	out := make([]domain.Fueling, len(s.Fuelings))
	copy(out, s.Fuelings)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// RefField selects which fueling reference an entity-scoped metric
// matches against.
type RefField int

const (
	ByVehicle RefField = iota
	ByDriver
)

// LastFuelingDate returns the most recent fueling date for the entity, or
// ok=false when the entity has no fuelings at all.
func LastFuelingDate(s domain.Snapshot, entityID string, by RefField) (domain.Date, bool) {
	var best domain.Date
	found := false
	for _, f := range s.Fuelings {
		if !matches(f, entityID, by) {
			continue
		}
		if !found || f.Date.After(best) {
			best = f.Date
		}
		found = true
	}
	return best, found
}

// AverageLiters returns the arithmetic mean of liters over the entity's
// fuelings, or ok=false when there are none. "No data" is deliberately
// distinct from a computed 0.
func AverageLiters(s domain.Snapshot, entityID string, by RefField) (float64, bool) {
	var total float64
	count := 0
	for _, f := range s.Fuelings {
		if matches(f, entityID, by) {
			total += num(f.Liters)
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return total / float64(count), true
}

func matches(f domain.Fueling, entityID string, by RefField) bool {
	if by == ByDriver {
		return f.DriverID == entityID
	}
	return f.VehicleID == entityID
}

// num guards aggregate sums against NaN values left behind by lenient
// snapshot normalization; they count as 0.
func num(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
