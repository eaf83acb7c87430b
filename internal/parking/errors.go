package parking

import "errors"

// ErrorKind tags the reason a park or fetch request was rejected.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidVehicle
	KindNoCapacity
	KindMissingTicket
	KindInvalidTicket
	KindCapacityExceeded
)

var kindMessages = map[ErrorKind]string{
	KindInvalidVehicle:   "Can not park a parked car or park a null car.",
	KindNoCapacity:       "Not enough position.",
	KindMissingTicket:    "Please provide your parking ticket.",
	KindInvalidTicket:    "Unrecognized parking ticket.",
	KindCapacityExceeded: "Lot is full.",
}

var kindNames = map[ErrorKind]string{
	KindInvalidVehicle:   "invalid_vehicle",
	KindNoCapacity:       "no_capacity",
	KindMissingTicket:    "missing_ticket",
	KindInvalidTicket:    "invalid_ticket",
	KindCapacityExceeded: "capacity_exceeded",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error is the single error type returned by lots, lot groups and attendants.
type Error struct {
	Kind ErrorKind
}

func (e *Error) Error() string {
	return kindMessages[e.Kind]
}

// Is matches any *Error of the same kind, so errors.Is works against the sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidVehicle   = &Error{Kind: KindInvalidVehicle}
	ErrNoCapacity       = &Error{Kind: KindNoCapacity}
	ErrMissingTicket    = &Error{Kind: KindMissingTicket}
	ErrInvalidTicket    = &Error{Kind: KindInvalidTicket}
	ErrCapacityExceeded = &Error{Kind: KindCapacityExceeded}
)

// KindOf returns the kind carried by err, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
