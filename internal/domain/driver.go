package domain

// Driver is a fleet driver.
type Driver struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	License string `json:"license"`
}

// DriverUpdate enumerates the driver fields a partial update may change.
type DriverUpdate struct {
	Name    *string
	License *string
}
