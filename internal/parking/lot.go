package parking

import (
	"fmt"
	"sync"
)

// SlotStatus is a point-in-time copy of an occupied bay.
type SlotStatus struct {
	Number       int
	Serial       int
	VehicleID    string
	Registration string
	Color        string
}

// LotStatus is a point-in-time copy of a lot's occupancy.
type LotStatus struct {
	Index    int
	Name     string
	Capacity int
	Occupied int
	Slots    []SlotStatus
}

func (s LotStatus) Available() int {
	return s.Capacity - s.Occupied
}

// Lot owns a fixed number of bays. Bays are reused lowest-number first;
// serials increase monotonically and are never handed out twice, so a
// redeemed ticket stays invalid after its bay is taken again.
type Lot struct {
	mu         sync.Mutex
	name       string
	capacity   int
	slots      []*Slot
	tickets    map[int]*Slot
	lastSerial int
}

func NewLot(name string, capacity int) (*Lot, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("lot %q: capacity must be greater than 0, got %d", name, capacity)
	}

	slots := make([]*Slot, capacity)
	for i := 0; i < capacity; i++ {
		slots[i] = NewSlot(i + 1)
	}

	return &Lot{
		name:     name,
		capacity: capacity,
		slots:    slots,
		tickets:  make(map[int]*Slot, capacity),
	}, nil
}

func (l *Lot) Name() string {
	return l.name
}

func (l *Lot) Capacity() int {
	return l.capacity
}

func (l *Lot) Occupied() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tickets)
}

func (l *Lot) HasCapacity() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tickets) < l.capacity
}

// Park puts vehicle in the lowest free bay and returns the serial minted for it.
func (l *Lot) Park(vehicle *Vehicle) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.tickets) >= l.capacity {
		return 0, ErrCapacityExceeded
	}

	for _, slot := range l.slots {
		if !slot.IsOccupied() {
			l.lastSerial++
			slot.Park(vehicle, l.lastSerial)
			l.tickets[l.lastSerial] = slot
			return l.lastSerial, nil
		}
	}
	return 0, ErrCapacityExceeded
}

// Fetch releases the vehicle parked under serial.
func (l *Lot) Fetch(serial int) (*Vehicle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot, ok := l.tickets[serial]
	if !ok {
		return nil, ErrInvalidTicket
	}

	delete(l.tickets, serial)
	return slot.Leave(), nil
}

// Status returns the occupied bays in bay order.
func (l *Lot) Status() LotStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	status := LotStatus{
		Name:     l.name,
		Capacity: l.capacity,
		Occupied: len(l.tickets),
	}
	for _, slot := range l.slots {
		if !slot.IsOccupied() {
			continue
		}
		status.Slots = append(status.Slots, SlotStatus{
			Number:       slot.Number,
			Serial:       slot.Serial,
			VehicleID:    slot.Vehicle.ID.String(),
			Registration: slot.Vehicle.Registration,
			Color:        slot.Vehicle.Color,
		})
	}
	return status
}
