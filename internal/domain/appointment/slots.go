package appointment

import "github.com/BruksfildServices01/agenda-online/internal/timeofday"

// Horários fixos de atendimento. O intervalo 11:00–14:00 é o almoço.
var timeSlots = []string{
	"08:00", "09:00", "10:00", "11:00",
	"14:00", "15:00", "16:00", "17:00",
}

// TimeSlots returns the ordered slot list. The slice is a copy.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// IsSlot reports whether s is exactly one of the slots. No fuzzy matching:
// "8:00" or "08:00:00" are rejected.
func IsSlot(s string) bool {
	for _, slot := range timeSlots {
		if slot == s {
			return true
		}
	}
	return false
}

// FreeSlots returns the slots not present in occupied, keeping slot order.
func FreeSlots(occupied []timeofday.Clock) []string {
	used := make(map[string]struct{}, len(occupied))
	for _, c := range occupied {
		used[c.String()] = struct{}{}
	}

	free := make([]string, 0, len(timeSlots))
	for _, slot := range timeSlots {
		if _, taken := used[slot]; !taken {
			free = append(free, slot)
		}
	}
	return free
}
