package appointment

import "github.com/BruksfildServices01/agenda-online/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
)

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness(CodeInvalidState)
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
