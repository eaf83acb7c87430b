package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"parking-attendant/internal/logging"
	"parking-attendant/internal/parking"
)

type Handler struct {
	serviceName string
	facility    *parking.Facility
}

// NewHandler serves facility, which may stay unopened until parking lots are
// created through the API or the shell.
func NewHandler(serviceName string, facility *parking.Facility) *Handler {
	return &Handler{
		serviceName: serviceName,
		facility:    facility,
	}
}

func statusForKind(kind parking.ErrorKind) int {
	switch kind {
	case parking.KindInvalidVehicle, parking.KindNoCapacity:
		return http.StatusConflict
	case parking.KindMissingTicket:
		return http.StatusBadRequest
	case parking.KindInvalidTicket:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "healthy",
		Service: h.serviceName,
		Meta:    extractMeta(r.Context()),
	}
	if attendant, _ := h.facility.Current(); attendant != nil {
		resp.Attendant = attendant.ID()
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateFacility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CreateFacilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Capacities) == 0 {
		WriteError(ctx, w, http.StatusBadRequest, "At least one capacity is required")
		return
	}

	specs := make([]parking.LotSpec, 0, len(req.Capacities))
	for _, capacity := range req.Capacities {
		if capacity <= 0 {
			WriteError(ctx, w, http.StatusBadRequest, "Capacity must be greater than 0")
			return
		}
		specs = append(specs, parking.LotSpec{Capacity: capacity})
	}

	id := req.AttendantID
	if id == "" {
		id = "api"
	}

	if _, err := h.facility.Open(ctx, id, specs...); err != nil {
		logging.Error(ctx, "failed to open facility", "attendant", id, "error", err)
		WriteError(ctx, w, http.StatusInternalServerError, "Failed to create parking lots")
		return
	}

	WriteSuccess(ctx, w, "Parking lots created successfully", map[string]any{
		"attendant_id": id,
		"capacities":   req.Capacities,
	})
}

func (h *Handler) ParkVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	attendant, fleet := h.facility.Current()
	if attendant == nil {
		WriteError(ctx, w, http.StatusBadRequest, "Parking lots not created. Create parking lots first")
		return
	}

	var req ParkVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// An empty registration reaches the attendant as an absent vehicle.
	vehicle := fleet.Vehicle(req.Registration, req.Color)

	ticket, err := attendant.Park(ctx, vehicle)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	WriteSuccess(ctx, w, "Vehicle parked successfully", ParkVehicleResponse{
		Ticket: TicketPayload{LotIndex: ticket.LotIndex, Serial: ticket.Serial},
		Vehicle: VehicleResponse{
			ID:           vehicle.ID.String(),
			Registration: vehicle.Registration,
			Color:        vehicle.Color,
		},
	})
}

func (h *Handler) FetchVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	attendant, _ := h.facility.Current()
	if attendant == nil {
		WriteError(ctx, w, http.StatusBadRequest, "Parking lots not created. Create parking lots first")
		return
	}

	var req FetchVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var ticket *parking.Ticket
	if req.Ticket != nil {
		ticket = &parking.Ticket{LotIndex: req.Ticket.LotIndex, Serial: req.Ticket.Serial}
	}

	vehicle, err := attendant.Fetch(ctx, ticket)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	WriteSuccess(ctx, w, "Vehicle fetched successfully", VehicleResponse{
		ID:           vehicle.ID.String(),
		Registration: vehicle.Registration,
		Color:        vehicle.Color,
	})
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	attendant, _ := h.facility.Current()
	if attendant == nil {
		WriteError(ctx, w, http.StatusBadRequest, "Parking lots not created. Create parking lots first")
		return
	}

	response := StatusResponse{Attendant: attendant.ID()}
	for _, lot := range attendant.Status(ctx) {
		status := LotStatus{
			Index:     lot.Index,
			Name:      lot.Name,
			Capacity:  lot.Capacity,
			Occupied:  lot.Occupied,
			Available: lot.Available(),
			Slots:     []SlotStatus{},
		}
		for _, slot := range lot.Slots {
			status.Slots = append(status.Slots, SlotStatus{
				SlotNumber:   slot.Number,
				Serial:       slot.Serial,
				VehicleID:    slot.VehicleID,
				Registration: slot.Registration,
				Color:        slot.Color,
			})
		}

		response.Capacity += lot.Capacity
		response.Occupied += lot.Occupied
		response.Lots = append(response.Lots, status)
	}
	response.Available = response.Capacity - response.Occupied

	WriteSuccess(ctx, w, "Status retrieved successfully", response)
}

func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var perr *parking.Error
	if !errors.As(err, &perr) {
		logging.Error(r.Context(), "unexpected attendant error", "error", err)
		WriteError(r.Context(), w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeKindError(r.Context(), w, statusForKind(perr.Kind), perr.Kind.String(), perr.Error())
}
