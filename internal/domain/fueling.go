package domain

// Fueling records one refueling event. VehicleID and DriverID always
// reference currently existing entities; the store guarantees this with
// reference checks on write and cascade deletes.
type Fueling struct {
	ID        string  `json:"id"`
	VehicleID string  `json:"vehicleId"`
	DriverID  string  `json:"driverId"`
	Date      Date    `json:"date"`
	Liters    float64 `json:"liters"`
	Cost      float64 `json:"cost"`
}

// FuelingInput carries raw form values for a new fueling. Numeric and date
// fields arrive as strings and are parsed and validated by the store before
// any state is written.
type FuelingInput struct {
	VehicleID string
	DriverID  string
	Date      string
	Liters    string
	Cost      string
}

// FuelingUpdate enumerates the fueling fields a partial update may change.
// Values are raw form strings; present fields are re-validated on merge.
type FuelingUpdate struct {
	VehicleID *string
	DriverID  *string
	Date      *string
	Liters    *string
	Cost      *string
}
