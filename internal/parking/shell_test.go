package parking

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func runShell(t *testing.T, facility *Facility, script string) []string {
	t.Helper()
	telemetry := newTestTelemetry(t).provider
	if facility == nil {
		facility = NewFacility(telemetry)
	}
	var out bytes.Buffer
	shell := NewShell(strings.NewReader(script), &out, telemetry, facility)
	shell.Run(context.Background())
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestShellSession(t *testing.T) {
	lines := runShell(t, nil, strings.Join([]string{
		"park KA01HH1234 White",
		"create_parking_lots 1 2",
		"park KA01HH1234 White",
		"park KA01HH1234 White",
		"park KA01HH9999 Black",
		"park KA01BB0001 Red",
		"park KA01HH7777 Blue",
		"fetch 0 1",
		"fetch 0 1",
		"fetch",
		"fetch x y",
		"status",
		"honk",
	}, "\n"))

	expected := []string{
		"Parking lots not created",
		"Created 2 parking lots with 3 slots",
		"Ticket: lot 0 serial 1",
		"Can not park a parked car or park a null car.",
		"Ticket: lot 1 serial 1",
		"Ticket: lot 1 serial 2",
		"Not enough position.",
		"Fetched KA01HH1234 White",
		"Unrecognized parking ticket.",
		"Please provide your parking ticket.",
		"Unrecognized parking ticket.",
		"Lot 0 (lot-1): 0/1 occupied",
		"Lot 1 (lot-2): 2/2 occupied",
		"Slot No.\tSerial\tRegistration No\tColour",
		"1\t\t1\tKA01HH9999\tBlack",
		"2\t\t2\tKA01BB0001\tRed",
		"Unknown command: honk",
	}

	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %d:\n%s", len(expected), len(lines), strings.Join(lines, "\n"))
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d: expected %q, got %q", i, expected[i], lines[i])
		}
	}
}

func TestShellUsesOpenedFacility(t *testing.T) {
	facility := NewFacility(newTestTelemetry(t).provider)
	if _, err := facility.Open(context.Background(), "EL0315", LotSpec{Capacity: 5}, LotSpec{Capacity: 8}, LotSpec{Capacity: 10}); err != nil {
		t.Fatalf("Failed to open facility: %v", err)
	}

	lines := runShell(t, facility, "park CAR0 White\npark CAR1 White\npark CAR2 White\npark CAR3 White\npark CAR4 White\npark OVERFLOW Red\n")

	if got := lines[len(lines)-1]; got != "Ticket: lot 1 serial 1" {
		t.Errorf("Expected overflow to land in lot 1, got %q", got)
	}
}

func TestShellCreateValidation(t *testing.T) {
	lines := runShell(t, nil, "create_parking_lots\ncreate_parking_lots 3 zero\ncreate_parking_lots 0\n")

	expected := []string{
		"Usage: create_parking_lots <capacity> [<capacity> ...]",
		"Invalid capacity",
		"Invalid capacity",
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d: expected %q, got %q", i, expected[i], lines[i])
		}
	}
}

func TestShellsShareFacility(t *testing.T) {
	facility := NewFacility(newTestTelemetry(t).provider)

	first := runShell(t, facility, "create_parking_lots 2\npark KA01HH1234 White\n")
	if got := first[len(first)-1]; got != "Ticket: lot 0 serial 1" {
		t.Fatalf("Expected first ticket, got %q", got)
	}

	second := runShell(t, facility, "park KA01HH1234 White\nstatus\n")
	expected := []string{
		"Can not park a parked car or park a null car.",
		"Lot 0 (lot-1): 1/2 occupied",
		"Slot No.\tSerial\tRegistration No\tColour",
		"1\t\t1\tKA01HH1234\tWhite",
	}
	if len(second) != len(expected) {
		t.Fatalf("Expected %d lines, got %d:\n%s", len(expected), len(second), strings.Join(second, "\n"))
	}
	for i := range expected {
		if second[i] != expected[i] {
			t.Errorf("line %d: expected %q, got %q", i, expected[i], second[i])
		}
	}
}
