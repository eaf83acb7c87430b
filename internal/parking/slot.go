package parking

// Slot is one physical bay of a lot.
type Slot struct {
	Number  int
	Serial  int
	Vehicle *Vehicle
}

func NewSlot(number int) *Slot {
	return &Slot{Number: number}
}

func (s *Slot) IsOccupied() bool {
	return s.Vehicle != nil
}

func (s *Slot) Park(vehicle *Vehicle, serial int) {
	s.Vehicle = vehicle
	s.Serial = serial
}

func (s *Slot) Leave() *Vehicle {
	vehicle := s.Vehicle
	s.Vehicle = nil
	s.Serial = 0
	return vehicle
}
