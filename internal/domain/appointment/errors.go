package appointment

import "errors"

// Business error codes raised by the booking flow.
const (
	CodeMissingFields       = "missing_fields"
	CodeInvalidDate         = "invalid_date"
	CodeInvalidTime         = "invalid_time"
	CodeInvalidIDs          = "invalid_ids"
	CodeServiceNotOffered   = "service_not_offered"
	CodeSlotTaken           = "slot_taken"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeInvalidState        = "invalid_state"
)

// ErrNotFound is returned by repositories when the requested row is absent.
var ErrNotFound = errors.New("record not found")
