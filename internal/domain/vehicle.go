package domain

// Vehicle is a fleet vehicle. The ID is assigned by the store at creation
// and never changes.
type Vehicle struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Plate string `json:"plate"`
}

// VehicleUpdate enumerates the vehicle fields a partial update may change.
// Nil fields are left untouched.
type VehicleUpdate struct {
	Name  *string
	Plate *string
}
