package parking

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultShellAttendantID = "shell"

type Shell struct {
	facility  *Facility
	scanner   *bufio.Scanner
	out       io.Writer
	telemetry *TelemetryProvider
}

// NewShell reads commands from in and writes replies to out, acting on
// facility. Until the facility is opened, create_parking_lots must run first.
func NewShell(in io.Reader, out io.Writer, telemetry *TelemetryProvider, facility *Facility) *Shell {
	return &Shell{
		facility:  facility,
		scanner:   bufio.NewScanner(in),
		out:       out,
		telemetry: telemetry,
	}
}

func (s *Shell) Run(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.run")
	defer span.End()

	span.AddEvent("shell_started")

	for s.scanner.Scan() {
		if ctx.Err() != nil {
			break
		}

		input := strings.TrimSpace(s.scanner.Text())
		if input == "" {
			continue
		}

		cmdCtx, cmdSpan := tracer.Start(ctx, "shell.process_command",
			trace.WithAttributes(attribute.String("command.input", input)))

		s.processCommand(cmdCtx, input)
		cmdSpan.End()
	}

	span.AddEvent("shell_ended")
}

func (s *Shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

func (s *Shell) processCommand(ctx context.Context, input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	command := parts[0]
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("command.name", command))

	switch command {
	case "create_parking_lots":
		s.handleCreateParkingLots(ctx, parts)
	case "park":
		s.handlePark(ctx, parts)
	case "fetch":
		s.handleFetch(ctx, parts)
	case "status":
		s.handleStatus(ctx)
	default:
		trace.SpanFromContext(ctx).AddEvent("unknown_command")
		s.printf("Unknown command: %s\n", command)
	}
}

func (s *Shell) handleCreateParkingLots(ctx context.Context, parts []string) {
	ctx, span := s.telemetry.Tracer().Start(ctx, "shell.create_parking_lots")
	defer span.End()

	if len(parts) < 2 {
		span.AddEvent("invalid_arguments")
		s.println("Usage: create_parking_lots <capacity> [<capacity> ...]")
		return
	}

	specs := make([]LotSpec, 0, len(parts)-1)
	total := 0
	for _, arg := range parts[1:] {
		capacity, err := strconv.Atoi(arg)
		if err != nil || capacity <= 0 {
			span.RecordError(fmt.Errorf("invalid capacity: %s", arg))
			s.println("Invalid capacity")
			return
		}
		specs = append(specs, LotSpec{Capacity: capacity})
		total += capacity
	}

	if _, err := s.facility.Open(ctx, defaultShellAttendantID, specs...); err != nil {
		span.RecordError(err)
		s.printf("Error creating parking lots: %s\n", err)
		return
	}

	span.SetAttributes(
		attribute.Int("lot_count", len(specs)),
		attribute.Int("total_capacity", total),
	)
	s.printf("Created %d parking lots with %d slots\n", len(specs), total)
}

func (s *Shell) handlePark(ctx context.Context, parts []string) {
	ctx, span := s.telemetry.Tracer().Start(ctx, "shell.park_command")
	defer span.End()

	attendant, fleet := s.facility.Current()
	if attendant == nil {
		span.AddEvent("parking_lots_not_created")
		s.println("Parking lots not created")
		return
	}

	if len(parts) != 3 {
		span.AddEvent("invalid_arguments")
		s.println("Usage: park <registration> <colour>")
		return
	}

	vehicle := fleet.Vehicle(parts[1], parts[2])

	ticket, err := attendant.Park(ctx, vehicle)
	if err != nil {
		span.AddEvent("parking_failed")
		s.println(err.Error())
		return
	}

	s.printf("Ticket: %s\n", ticket)
}

func (s *Shell) handleFetch(ctx context.Context, parts []string) {
	ctx, span := s.telemetry.Tracer().Start(ctx, "shell.fetch_command")
	defer span.End()

	attendant, _ := s.facility.Current()
	if attendant == nil {
		span.AddEvent("parking_lots_not_created")
		s.println("Parking lots not created")
		return
	}

	var ticket *Ticket
	switch len(parts) {
	case 1:
	case 3:
		lotIndex, err1 := strconv.Atoi(parts[1])
		serial, err2 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil {
			span.AddEvent("invalid_ticket_format")
			s.println(ErrInvalidTicket.Error())
			return
		}
		ticket = &Ticket{LotIndex: lotIndex, Serial: serial}
	default:
		span.AddEvent("invalid_arguments")
		s.println("Usage: fetch <lot_index> <serial>")
		return
	}

	vehicle, err := attendant.Fetch(ctx, ticket)
	if err != nil {
		span.AddEvent("fetch_failed")
		s.println(err.Error())
		return
	}

	s.printf("Fetched %s %s\n", vehicle.Registration, vehicle.Color)
}

func (s *Shell) handleStatus(ctx context.Context) {
	ctx, span := s.telemetry.Tracer().Start(ctx, "shell.status_command")
	defer span.End()

	attendant, _ := s.facility.Current()
	if attendant == nil {
		span.AddEvent("parking_lots_not_created")
		s.println("Parking lots not created")
		return
	}

	for _, lot := range attendant.Status(ctx) {
		s.printf("Lot %d (%s): %d/%d occupied\n", lot.Index, lot.Name, lot.Occupied, lot.Capacity)
		if len(lot.Slots) == 0 {
			continue
		}
		s.println("Slot No.\tSerial\tRegistration No\tColour")
		for _, slot := range lot.Slots {
			s.printf("%d\t\t%d\t%s\t%s\n", slot.Number, slot.Serial, slot.Registration, slot.Color)
		}
	}
}
