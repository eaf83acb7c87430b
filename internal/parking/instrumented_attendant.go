package parking

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"parking-attendant/internal/logging"
)

type InstrumentedAttendant struct {
	*Attendant
	telemetry *TelemetryProvider

	// Metrics
	parkingOperations metric.Int64Counter
	fetchOperations   metric.Int64Counter
	operationDuration metric.Float64Histogram
	lotGauges         metric.Registration
}

func NewInstrumentedAttendant(attendant *Attendant, telemetry *TelemetryProvider) (*InstrumentedAttendant, error) {
	meter := telemetry.Meter()

	parkingOperations, err := meter.Int64Counter("parking_operations_total",
		metric.WithDescription("Total number of parking operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	fetchOperations, err := meter.Int64Counter("fetch_operations_total",
		metric.WithDescription("Total number of fetch operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("operation_duration_seconds",
		metric.WithDescription("Duration of attendant operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	occupancyGauge, err := meter.Int64ObservableGauge("parking_lot_occupancy",
		metric.WithDescription("Current number of occupied parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	totalSlotsGauge, err := meter.Int64ObservableGauge("parking_lot_total_slots",
		metric.WithDescription("Total number of parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	ia := &InstrumentedAttendant{
		Attendant:         attendant,
		telemetry:         telemetry,
		parkingOperations: parkingOperations,
		fetchOperations:   fetchOperations,
		operationDuration: operationDuration,
	}

	// Lot gauges are observed from the live lots until Close.
	ia.lotGauges, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		for _, lot := range ia.Attendant.Status() {
			attrs := metric.WithAttributes(ia.lotAttrs(lot.Index)...)
			o.ObserveInt64(occupancyGauge, int64(lot.Occupied), attrs)
			o.ObserveInt64(totalSlotsGauge, int64(lot.Capacity), attrs)
		}
		return nil
	}, occupancyGauge, totalSlotsGauge)
	if err != nil {
		return nil, err
	}

	return ia, nil
}

// Close stops the attendant's lot gauges from being reported.
func (ia *InstrumentedAttendant) Close() error {
	return ia.lotGauges.Unregister()
}

func (ia *InstrumentedAttendant) lotAttrs(index int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("attendant", ia.ID()),
		attribute.Int("lot_index", index),
	}
}

func (ia *InstrumentedAttendant) Park(ctx context.Context, vehicle *Vehicle) (*Ticket, error) {
	spanAttrs := []attribute.KeyValue{attribute.String("attendant", ia.ID())}
	if vehicle != nil {
		spanAttrs = append(spanAttrs,
			attribute.String("vehicle.id", vehicle.ID.String()),
			attribute.String("vehicle.registration", vehicle.Registration),
		)
	}

	ctx, span := ia.telemetry.Tracer().Start(ctx, "attendant.park", trace.WithAttributes(spanAttrs...))
	defer span.End()

	start := time.Now()

	span.AddEvent("selecting_lot")

	ticket, err := ia.Attendant.Park(vehicle)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "park"),
		attribute.String("attendant", ia.ID()),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels,
			attribute.String("status", "failed"),
			attribute.String("error_kind", KindOf(err).String()),
		)
		logging.Warn(ctx, "park rejected", "attendant", ia.ID(), "error_kind", KindOf(err).String(), "error", err)
	} else {
		labels = append(labels,
			attribute.String("status", "success"),
			attribute.Int("lot_index", ticket.LotIndex),
		)
		span.SetAttributes(
			attribute.Int("ticket.lot_index", ticket.LotIndex),
			attribute.Int("ticket.serial", ticket.Serial),
		)
		span.AddEvent("ticket_issued", trace.WithAttributes(
			attribute.Int("lot_index", ticket.LotIndex),
			attribute.Int("serial", ticket.Serial),
		))
		logging.Info(ctx, "vehicle parked", "attendant", ia.ID(), "lot_index", ticket.LotIndex, "serial", ticket.Serial)
	}

	ia.parkingOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ia.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return ticket, err
}

func (ia *InstrumentedAttendant) Fetch(ctx context.Context, ticket *Ticket) (*Vehicle, error) {
	spanAttrs := []attribute.KeyValue{attribute.String("attendant", ia.ID())}
	if ticket != nil {
		spanAttrs = append(spanAttrs,
			attribute.Int("ticket.lot_index", ticket.LotIndex),
			attribute.Int("ticket.serial", ticket.Serial),
		)
	}

	ctx, span := ia.telemetry.Tracer().Start(ctx, "attendant.fetch", trace.WithAttributes(spanAttrs...))
	defer span.End()

	start := time.Now()

	span.AddEvent("redeeming_ticket")

	vehicle, err := ia.Attendant.Fetch(ticket)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "fetch"),
		attribute.String("attendant", ia.ID()),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels,
			attribute.String("status", "failed"),
			attribute.String("error_kind", KindOf(err).String()),
		)
		logging.Warn(ctx, "fetch rejected", "attendant", ia.ID(), "error_kind", KindOf(err).String(), "error", err)
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.SetAttributes(
			attribute.String("vehicle.id", vehicle.ID.String()),
			attribute.String("vehicle.registration", vehicle.Registration),
		)
		span.AddEvent("vehicle_released")
		logging.Info(ctx, "vehicle fetched", "attendant", ia.ID(), "lot_index", ticket.LotIndex, "serial", ticket.Serial)
	}

	ia.fetchOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ia.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return vehicle, err
}

func (ia *InstrumentedAttendant) Status(ctx context.Context) []LotStatus {
	_, span := ia.telemetry.Tracer().Start(ctx, "attendant.status")
	defer span.End()

	start := time.Now()

	statuses := ia.Attendant.Status()

	occupied, capacity := 0, 0
	for _, s := range statuses {
		occupied += s.Occupied
		capacity += s.Capacity
	}
	span.SetAttributes(
		attribute.Int("lot_count", len(statuses)),
		attribute.Int("occupied_slots_count", occupied),
		attribute.Int("total_capacity", capacity),
	)

	ia.operationDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		attribute.String("operation", "status"),
		attribute.String("attendant", ia.ID()),
		attribute.String("status", "success"),
	))

	return statuses
}
