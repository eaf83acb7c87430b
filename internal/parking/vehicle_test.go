package parking

import "testing"

func TestNewVehicle(t *testing.T) {
	vehicle := NewVehicle("KA01HH1234", "White")

	if vehicle.Registration != "KA01HH1234" {
		t.Errorf("Expected registration KA01HH1234, got %s", vehicle.Registration)
	}
	if vehicle.Color != "White" {
		t.Errorf("Expected color White, got %s", vehicle.Color)
	}
}

func TestVehiclesWithSameRegistrationAreDistinct(t *testing.T) {
	first := NewVehicle("KA01HH1234", "White")
	second := NewVehicle("KA01HH1234", "White")

	if first.ID == second.ID {
		t.Error("Expected each vehicle to get its own identity")
	}
}

func TestFleetReusesVehiclePerRegistration(t *testing.T) {
	fleet := NewFleet()

	first := fleet.Vehicle("KA01HH1234", "White")
	again := fleet.Vehicle("KA01HH1234", "Black")
	other := fleet.Vehicle("KA01HH9999", "White")

	if first != again {
		t.Error("Expected the same vehicle for the same registration")
	}
	if again.Color != "White" {
		t.Errorf("Expected first-seen color to stick, got %s", again.Color)
	}
	if first == other {
		t.Error("Expected different vehicles for different registrations")
	}
	if fleet.Vehicle("", "White") != nil {
		t.Error("Expected nil vehicle for an empty registration")
	}
}
