package parking

import (
	"context"
	"sync"

	"parking-attendant/internal/logging"
)

// Facility is the attendant and fleet shared by every surface of one
// process. Opening new lots replaces both at once.
type Facility struct {
	telemetry *TelemetryProvider

	mu        sync.RWMutex
	attendant *InstrumentedAttendant
	fleet     *Fleet
}

func NewFacility(telemetry *TelemetryProvider) *Facility {
	return &Facility{
		telemetry: telemetry,
		fleet:     NewFleet(),
	}
}

// Current returns the serving attendant, nil before the first Open, and the
// fleet its vehicles come from.
func (f *Facility) Current() (*InstrumentedAttendant, *Fleet) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.attendant, f.fleet
}

// Open builds a new attendant over specs and makes it current. Vehicles
// parked with the previous attendant are forgotten along with it.
func (f *Facility) Open(ctx context.Context, id string, specs ...LotSpec) (*InstrumentedAttendant, error) {
	attendant, err := BuildAttendant(id, specs...)
	if err != nil {
		return nil, err
	}

	instrumented, err := NewInstrumentedAttendant(attendant, f.telemetry)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	previous := f.attendant
	f.attendant = instrumented
	f.fleet = NewFleet()
	f.mu.Unlock()

	if previous != nil {
		if err := previous.Close(); err != nil {
			logging.Warn(ctx, "failed to close replaced attendant", "attendant", previous.ID(), "error", err)
		}
	}

	logging.Info(ctx, "facility opened", "attendant", id, "lots", len(specs))
	return instrumented, nil
}

// Close releases the current attendant's instruments.
func (f *Facility) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.attendant == nil {
		return nil
	}
	err := f.attendant.Close()
	f.attendant = nil
	return err
}
