package parking

import (
	"fmt"
	"sync"
)

// LotSpec describes one lot to build for a facility.
type LotSpec struct {
	Name     string
	Capacity int
}

// Attendant is the entry point for parking and fetching vehicles. It rejects
// absent vehicles, vehicles that are already parked, and absent tickets before
// handing the request to its lot group.
type Attendant struct {
	mu     sync.Mutex
	id     string
	lots   *LotGroup
	parked map[*Vehicle]struct{}
}

func NewAttendant(id string, lots *LotGroup) *Attendant {
	return &Attendant{
		id:     id,
		lots:   lots,
		parked: make(map[*Vehicle]struct{}),
	}
}

// BuildAttendant builds one lot per spec, in order, and an attendant over them.
func BuildAttendant(id string, specs ...LotSpec) (*Attendant, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("facility %q: at least one lot is required", id)
	}

	lots := make([]*Lot, 0, len(specs))
	for i, spec := range specs {
		name := spec.Name
		if name == "" {
			name = fmt.Sprintf("lot-%d", i+1)
		}
		lot, err := NewLot(name, spec.Capacity)
		if err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}

	return NewAttendant(id, NewLotGroup(lots...)), nil
}

func (a *Attendant) ID() string {
	return a.id
}

func (a *Attendant) Park(vehicle *Vehicle) (*Ticket, error) {
	if vehicle == nil {
		return nil, ErrInvalidVehicle
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.parked[vehicle]; ok {
		return nil, ErrInvalidVehicle
	}

	ticket, err := a.lots.ParkInto(vehicle)
	if err != nil {
		return nil, err
	}

	a.parked[vehicle] = struct{}{}
	return &ticket, nil
}

func (a *Attendant) Fetch(ticket *Ticket) (*Vehicle, error) {
	if ticket == nil {
		return nil, ErrMissingTicket
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	vehicle, err := a.lots.FetchFrom(*ticket)
	if err != nil {
		return nil, err
	}

	delete(a.parked, vehicle)
	return vehicle, nil
}

func (a *Attendant) IsParked(vehicle *Vehicle) bool {
	if vehicle == nil {
		return false
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.parked[vehicle]
	return ok
}

func (a *Attendant) Status() []LotStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lots.Status()
}
