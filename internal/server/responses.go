package server

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

type Meta struct {
	TraceID   string `json:"trace_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Attendant string `json:"attendant,omitempty"`
	Meta      *Meta  `json:"meta,omitempty"`
}

type CreateFacilityRequest struct {
	AttendantID string `json:"attendant_id"`
	Capacities  []int  `json:"capacities"`
}

type ParkVehicleRequest struct {
	Registration string `json:"registration"`
	Color        string `json:"color"`
}

type TicketPayload struct {
	LotIndex int `json:"lot_index"`
	Serial   int `json:"serial"`
}

type FetchVehicleRequest struct {
	Ticket *TicketPayload `json:"ticket"`
}

type VehicleResponse struct {
	ID           string `json:"id"`
	Registration string `json:"registration"`
	Color        string `json:"color"`
}

type ParkVehicleResponse struct {
	Ticket  TicketPayload   `json:"ticket"`
	Vehicle VehicleResponse `json:"vehicle"`
}

type SlotStatus struct {
	SlotNumber   int    `json:"slot_number"`
	Serial       int    `json:"serial"`
	VehicleID    string `json:"vehicle_id"`
	Registration string `json:"registration"`
	Color        string `json:"color"`
}

type LotStatus struct {
	Index     int          `json:"index"`
	Name      string       `json:"name"`
	Capacity  int          `json:"capacity"`
	Occupied  int          `json:"occupied"`
	Available int          `json:"available"`
	Slots     []SlotStatus `json:"slots"`
}

type StatusResponse struct {
	Attendant string      `json:"attendant"`
	Capacity  int         `json:"capacity"`
	Occupied  int         `json:"occupied"`
	Available int         `json:"available"`
	Lots      []LotStatus `json:"lots"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func extractMeta(ctx context.Context) *Meta {
	meta := &Meta{}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().HasTraceID() {
		meta.TraceID = span.SpanContext().TraceID().String()
	}

	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		meta.RequestID = reqID
	}

	return meta
}

func WriteSuccess(ctx context.Context, w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    extractMeta(ctx),
	})
}

func WriteError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{
		Success: false,
		Error:   message,
		Meta:    extractMeta(ctx),
	})
}

func writeKindError(ctx context.Context, w http.ResponseWriter, status int, kind string, message string) {
	WriteJSON(w, status, Response{
		Success: false,
		Error:   message,
		Kind:    kind,
		Meta:    extractMeta(ctx),
	})
}
