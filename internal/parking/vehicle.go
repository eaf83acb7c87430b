package parking

import "github.com/google/uuid"

// Vehicle identity is the pointer itself. ID labels the vehicle in logs,
// traces and API responses; registration and colour are descriptive only.
type Vehicle struct {
	ID           uuid.UUID
	Registration string
	Color        string
}

func NewVehicle(registration, color string) *Vehicle {
	return &Vehicle{
		ID:           uuid.New(),
		Registration: registration,
		Color:        color,
	}
}
