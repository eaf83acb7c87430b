package parking

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func newAttendant(t *testing.T, capacities ...int) *Attendant {
	t.Helper()
	specs := make([]LotSpec, len(capacities))
	for i, c := range capacities {
		specs[i] = LotSpec{Capacity: c}
	}
	attendant, err := BuildAttendant("EL0315", specs...)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	return attendant
}

func TestAttendantParkThenFetch(t *testing.T) {
	attendant := newAttendant(t, 5)
	vehicle := NewVehicle("KA01HH1234", "White")

	ticket, err := attendant.Park(vehicle)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	fetched, err := attendant.Fetch(ticket)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if fetched != vehicle {
		t.Error("Expected to fetch the same vehicle that was parked")
	}
}

func TestAttendantTicketsAreIndependent(t *testing.T) {
	attendant := newAttendant(t, 5)
	first := NewVehicle("KA01HH1234", "White")
	second := NewVehicle("KA01HH9999", "Black")

	firstTicket, _ := attendant.Park(first)
	secondTicket, _ := attendant.Park(second)

	if *firstTicket == *secondTicket {
		t.Fatal("Expected distinct tickets for distinct vehicles")
	}

	if v, _ := attendant.Fetch(secondTicket); v != second {
		t.Error("Expected second ticket to return second vehicle")
	}
	if v, _ := attendant.Fetch(firstTicket); v != first {
		t.Error("Expected first ticket to return first vehicle")
	}
}

func TestAttendantRejectsWrongTicket(t *testing.T) {
	attendant := newAttendant(t, 5)
	attendant.Park(NewVehicle("KA01HH1234", "White"))

	_, err := attendant.Fetch(&Ticket{LotIndex: 0, Serial: 0})
	if !errors.Is(err, ErrInvalidTicket) {
		t.Fatalf("Expected ErrInvalidTicket, got %v", err)
	}
	if err.Error() != "Unrecognized parking ticket." {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestAttendantRejectsUsedTicket(t *testing.T) {
	attendant := newAttendant(t, 5)
	ticket, _ := attendant.Park(NewVehicle("KA01HH1234", "White"))

	if _, err := attendant.Fetch(ticket); err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	_, err := attendant.Fetch(ticket)
	if !errors.Is(err, ErrInvalidTicket) {
		t.Fatalf("Expected ErrInvalidTicket, got %v", err)
	}
	if err.Error() != "Unrecognized parking ticket." {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestAttendantRejectsMissingTicket(t *testing.T) {
	attendant := newAttendant(t, 5)
	attendant.Park(NewVehicle("KA01HH1234", "White"))

	_, err := attendant.Fetch(nil)
	if !errors.Is(err, ErrMissingTicket) {
		t.Fatalf("Expected ErrMissingTicket, got %v", err)
	}
	if err.Error() != "Please provide your parking ticket." {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestAttendantRejectsParkWhenFull(t *testing.T) {
	attendant := newAttendant(t, 5)
	for i := 0; i < 5; i++ {
		if _, err := attendant.Park(NewVehicle(fmt.Sprintf("CAR%d", i), "White")); err != nil {
			t.Fatalf("park %d: unexpected error: %s", i, err.Error())
		}
	}

	overflow := NewVehicle("OVERFLOW", "Red")
	_, err := attendant.Park(overflow)
	if !errors.Is(err, ErrNoCapacity) {
		t.Fatalf("Expected ErrNoCapacity, got %v", err)
	}
	if err.Error() != "Not enough position." {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if attendant.IsParked(overflow) {
		t.Error("Expected rejected vehicle not to be marked as parked")
	}
}

func TestAttendantRejectsParkedVehicle(t *testing.T) {
	attendant := newAttendant(t, 5)
	vehicle := NewVehicle("KA01HH1234", "White")
	attendant.Park(vehicle)

	_, err := attendant.Park(vehicle)
	if !errors.Is(err, ErrInvalidVehicle) {
		t.Fatalf("Expected ErrInvalidVehicle, got %v", err)
	}
	if err.Error() != "Can not park a parked car or park a null car." {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if got := attendant.Status()[0].Occupied; got != 1 {
		t.Errorf("Expected rejected park to leave 1 occupied, got %d", got)
	}
}

func TestAttendantRejectsNilVehicle(t *testing.T) {
	attendant := newAttendant(t, 5)

	_, err := attendant.Park(nil)
	if !errors.Is(err, ErrInvalidVehicle) {
		t.Fatalf("Expected ErrInvalidVehicle, got %v", err)
	}
	if err.Error() != "Can not park a parked car or park a null car." {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestAttendantTracksVehiclesByInstance(t *testing.T) {
	attendant := newAttendant(t, 5)

	first := &Vehicle{Registration: "KA01HH1234"}
	second := &Vehicle{Registration: "KA01HH9999"}
	original := NewVehicle("KA01BB0001", "Red")
	copied := *original

	for _, vehicle := range []*Vehicle{first, second, original, &copied} {
		if _, err := attendant.Park(vehicle); err != nil {
			t.Errorf("Expected %s to park, got %v", vehicle.Registration, err)
		}
	}

	if _, err := attendant.Park(first); !errors.Is(err, ErrInvalidVehicle) {
		t.Errorf("Expected parking the same instance again to fail, got %v", err)
	}
	if got := attendant.Status()[0].Occupied; got != 4 {
		t.Errorf("Expected 4 occupied, got %d", got)
	}
}

func TestAttendantAllowsReparkAfterFetch(t *testing.T) {
	attendant := newAttendant(t, 1)
	vehicle := NewVehicle("KA01HH1234", "White")

	for i := 0; i < 3; i++ {
		ticket, err := attendant.Park(vehicle)
		if err != nil {
			t.Fatalf("cycle %d: unexpected error: %s", i, err.Error())
		}
		if !attendant.IsParked(vehicle) {
			t.Errorf("cycle %d: expected vehicle to be parked", i)
		}
		if _, err := attendant.Fetch(ticket); err != nil {
			t.Fatalf("cycle %d: unexpected error: %s", i, err.Error())
		}
		if attendant.IsParked(vehicle) {
			t.Errorf("cycle %d: expected vehicle to be unparked", i)
		}
	}
}

func TestAttendantUsesSecondLotWhenFirstIsFull(t *testing.T) {
	attendant := newAttendant(t, 5, 8, 10)

	for i := 0; i < 5; i++ {
		attendant.Park(NewVehicle(fmt.Sprintf("CAR%d", i), "White"))
	}

	ticket, err := attendant.Park(NewVehicle("OVERFLOW", "Red"))
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if ticket.LotIndex != 1 {
		t.Errorf("Expected lot index 1, got %d", ticket.LotIndex)
	}
}

func TestAttendantConcurrentParks(t *testing.T) {
	attendant := newAttendant(t, 3, 4)
	vehicle := NewVehicle("SHARED", "White")

	var wg sync.WaitGroup
	results := make(chan error, 40)
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := attendant.Park(NewVehicle(fmt.Sprintf("CAR%d", i), "White"))
			results <- err
		}(i)
		go func() {
			defer wg.Done()
			_, err := attendant.Park(vehicle)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	ok := 0
	for err := range results {
		if err == nil {
			ok++
		}
	}
	if ok != 7 {
		t.Errorf("Expected 7 successful parks across both lots, got %d", ok)
	}

	occupied := 0
	for _, lot := range attendant.Status() {
		if lot.Occupied > lot.Capacity {
			t.Errorf("Lot %d over capacity: %d > %d", lot.Index, lot.Occupied, lot.Capacity)
		}
		occupied += lot.Occupied
	}
	if occupied != 7 {
		t.Errorf("Expected 7 occupied, got %d", occupied)
	}
}

func TestBuildAttendant(t *testing.T) {
	if _, err := BuildAttendant("EL0315"); err == nil {
		t.Error("Expected error for a facility with no lots")
	}
	if _, err := BuildAttendant("EL0315", LotSpec{Capacity: 3}, LotSpec{Capacity: 0}); err == nil {
		t.Error("Expected error for a zero-capacity lot")
	}

	attendant, err := BuildAttendant("EL0315", LotSpec{Name: "basement", Capacity: 2}, LotSpec{Capacity: 4})
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if attendant.ID() != "EL0315" {
		t.Errorf("Expected id EL0315, got %s", attendant.ID())
	}

	status := attendant.Status()
	if status[0].Name != "basement" || status[1].Name != "lot-2" {
		t.Errorf("Unexpected lot names %q, %q", status[0].Name, status[1].Name)
	}
	if status[1].Index != 1 || status[1].Capacity != 4 {
		t.Errorf("Unexpected second lot %+v", status[1])
	}
}
