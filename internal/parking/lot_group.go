package parking

import "errors"

// LotGroup routes parks and fetches across an ordered set of lots.
type LotGroup struct {
	lots []*Lot
}

func NewLotGroup(lots ...*Lot) *LotGroup {
	return &LotGroup{lots: lots}
}

func (g *LotGroup) Len() int {
	return len(g.lots)
}

// ParkInto parks vehicle in the first lot, by ascending index, that has room.
func (g *LotGroup) ParkInto(vehicle *Vehicle) (Ticket, error) {
	for i, lot := range g.lots {
		if !lot.HasCapacity() {
			continue
		}

		serial, err := lot.Park(vehicle)
		if errors.Is(err, ErrCapacityExceeded) {
			// filled up between the check and the park
			continue
		}
		if err != nil {
			return Ticket{}, err
		}
		return Ticket{LotIndex: i, Serial: serial}, nil
	}
	return Ticket{}, ErrNoCapacity
}

func (g *LotGroup) FetchFrom(ticket Ticket) (*Vehicle, error) {
	if ticket.LotIndex < 0 || ticket.LotIndex >= len(g.lots) {
		return nil, ErrInvalidTicket
	}
	return g.lots[ticket.LotIndex].Fetch(ticket.Serial)
}

func (g *LotGroup) Status() []LotStatus {
	statuses := make([]LotStatus, len(g.lots))
	for i, lot := range g.lots {
		statuses[i] = lot.Status()
		statuses[i].Index = i
	}
	return statuses
}
