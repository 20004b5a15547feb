package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

const (
	// BookingDateLayout is how booking dates are shown (dd/mm/yyyy).
	BookingDateLayout = "02/01/2006"
	// bookingInputLayout also accepts unpadded day and month (1/3/2025).
	bookingInputLayout = "2/1/2006"
	// AdminDateLayout is used by the admin date filter (yyyy-mm-dd).
	AdminDateLayout = "2006-01-02"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// CivilDate drops the clock and location, keeping the calendar day as
// UTC midnight. Appointment dates are always carried in this form.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today is the current calendar day in tz.
func Today(tz string) time.Time {
	return CivilDate(NowIn(tz))
}

func ParseBookingDate(s string) (time.Time, error) {
	t, err := time.Parse(bookingInputLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return CivilDate(t), nil
}

func ParseAdminDate(s string) (time.Time, error) {
	t, err := time.Parse(AdminDateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return CivilDate(t), nil
}

func FormatBookingDate(t time.Time) string {
	return t.Format(BookingDateLayout)
}
