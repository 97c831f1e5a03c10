package handler

import (
	"math"

	"github.com/frotaops/frota/internal/domain"
	"github.com/frotaops/frota/internal/metrics"
)

// FuelingDTO is the JSON representation of a fueling with the referenced
// vehicle and driver names resolved, as the list screens display them.
type FuelingDTO struct {
	ID          string  `json:"id"`
	VehicleID   string  `json:"vehicleId"`
	VehicleName string  `json:"vehicleName"`
	DriverID    string  `json:"driverId"`
	DriverName  string  `json:"driverName"`
	Date        string  `json:"date"`
	Liters      float64 `json:"liters"`
	Cost        float64 `json:"cost"`
}

func toFuelingDTO(s domain.Snapshot, f domain.Fueling) FuelingDTO {
	dto := FuelingDTO{
		ID:        f.ID,
		VehicleID: f.VehicleID,
		DriverID:  f.DriverID,
		Date:      f.Date.String(),
		Liters:    amount(f.Liters),
		Cost:      amount(f.Cost),
	}
	if v, ok := s.VehicleByID(f.VehicleID); ok {
		dto.VehicleName = v.Name
	}
	if d, ok := s.DriverByID(f.DriverID); ok {
		dto.DriverName = d.Name
	}
	return dto
}

func toFuelingDTOs(s domain.Snapshot, fuelings []domain.Fueling) []FuelingDTO {
	dtos := make([]FuelingDTO, len(fuelings))
	for i, f := range fuelings {
		dtos[i] = toFuelingDTO(s, f)
	}
	return dtos
}

// toSnapshotDTO returns a copy of the snapshot that is safe to marshal.
// Stored records can carry NaN amounts, which encoding/json rejects; they
// render as 0, matching the aggregates.
func toSnapshotDTO(s domain.Snapshot) domain.Snapshot {
	out := s.Clone()
	for i := range out.Fuelings {
		out.Fuelings[i].Liters = amount(out.Fuelings[i].Liters)
		out.Fuelings[i].Cost = amount(out.Fuelings[i].Cost)
	}
	return out
}

// amount guards response payloads against non-finite values left behind
// by lenient snapshot normalization.
func amount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// DashboardDTO bundles everything the dashboard view renders.
type DashboardDTO struct {
	Totals               metrics.FleetTotals          `json:"totals"`
	ConsumptionByVehicle []metrics.VehicleConsumption `json:"consumptionByVehicle"`
	SummaryByDriver      []metrics.DriverSummary      `json:"summaryByDriver"`
	LatestFuelings       []FuelingDTO                 `json:"latestFuelings"`
}

func toDashboardDTO(s domain.Snapshot) DashboardDTO {
	return DashboardDTO{
		Totals:               metrics.Totals(s),
		ConsumptionByVehicle: metrics.ConsumptionByVehicle(s),
		SummaryByDriver:      metrics.SummaryByDriver(s),
		LatestFuelings:       toFuelingDTOs(s, metrics.LatestFuelings(s, latestFuelingCount)),
	}
}

// EntityStatsDTO carries the per-entity figures the vehicle and driver
// list screens show. Nil pointers mean "no fuelings recorded", which is
// distinct from a computed zero.
type EntityStatsDTO struct {
	LastFuelingDate *string  `json:"lastFuelingDate"`
	AverageLiters   *float64 `json:"averageLiters"`
	TotalLiters     float64  `json:"totalLiters"`
	TotalCost       float64  `json:"totalCost"`
}

func toEntityStatsDTO(s domain.Snapshot, entityID string, by metrics.RefField) EntityStatsDTO {
	var dto EntityStatsDTO
	if date, ok := metrics.LastFuelingDate(s, entityID, by); ok {
		str := date.String()
		dto.LastFuelingDate = &str
	}
	if avg, ok := metrics.AverageLiters(s, entityID, by); ok {
		dto.AverageLiters = &avg
	}
	if by == metrics.ByVehicle {
		for _, c := range metrics.ConsumptionByVehicle(s) {
			if c.VehicleID == entityID {
				dto.TotalLiters, dto.TotalCost = c.Liters, c.Cost
			}
		}
	} else {
		for _, c := range metrics.SummaryByDriver(s) {
			if c.DriverID == entityID {
				dto.TotalLiters, dto.TotalCost = c.Liters, c.Cost
			}
		}
	}
	return dto
}
