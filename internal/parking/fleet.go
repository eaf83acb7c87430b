package parking

import "sync"

// Fleet hands out one Vehicle per registration so that callers which only
// know a registration (the shell, the HTTP API) keep a stable identity.
type Fleet struct {
	mu       sync.Mutex
	vehicles map[string]*Vehicle
}

func NewFleet() *Fleet {
	return &Fleet{vehicles: make(map[string]*Vehicle)}
}

// Vehicle returns the vehicle registered under registration, creating it on
// first sight. An empty registration yields nil.
func (f *Fleet) Vehicle(registration, color string) *Vehicle {
	if registration == "" {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if v, ok := f.vehicles[registration]; ok {
		return v
	}
	v := NewVehicle(registration, color)
	f.vehicles[registration] = v
	return v
}
