// Package timeofday normalizes the different shapes a time of day can take
// (text, timestamps, elapsed durations) into a single canonical Clock.
package timeofday

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

var ErrUnrecognized = errors.New("timeofday: unrecognized time value")

const secondsPerDay = 24 * 60 * 60

var textLayouts = []string{"15:04:05", "15:04"}

// Clock is a wall-clock time of day with second precision.
type Clock struct {
	seconds int
}

// Value is one of Clock, Text, Timestamp or Elapsed.
type Value interface {
	timeValue()
}

// Text is a formatted time such as "14:00" or "14:00:00".
type Text string

// Timestamp is a combined date-time; only the time of day is kept.
type Timestamp time.Time

// Elapsed is a duration since midnight. Values outside a day wrap.
type Elapsed time.Duration

func (Clock) timeValue()     {}
func (Text) timeValue()      {}
func (Timestamp) timeValue() {}
func (Elapsed) timeValue()   {}

// MustParse is like Parse but panics on error. Meant for constants.
func MustParse(s string) Clock {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func Parse(s string) (Clock, error) {
	return Normalize(Text(s))
}

// Normalize maps every variant to its canonical Clock.
func Normalize(v Value) (Clock, error) {
	switch t := v.(type) {
	case Clock:
		return t, nil
	case Timestamp:
		tm := time.Time(t)
		return Clock{seconds: tm.Hour()*3600 + tm.Minute()*60 + tm.Second()}, nil
	case Elapsed:
		secs := int64(time.Duration(t) / time.Second)
		secs %= secondsPerDay
		if secs < 0 {
			secs += secondsPerDay
		}
		return Clock{seconds: int(secs)}, nil
	case Text:
		for _, layout := range textLayouts {
			if tm, err := time.Parse(layout, string(t)); err == nil {
				return Normalize(Timestamp(tm))
			}
		}
		return Clock{}, fmt.Errorf("%w: %q", ErrUnrecognized, string(t))
	}
	return Clock{}, fmt.Errorf("%w: %T", ErrUnrecognized, v)
}

func (c Clock) Hour() int   { return c.seconds / 3600 }
func (c Clock) Minute() int { return c.seconds % 3600 / 60 }
func (c Clock) Second() int { return c.seconds % 60 }

// String formats as HH:MM, the form used by the slot list.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Long formats as HH:MM:SS.
func (c Clock) Long() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour(), c.Minute(), c.Second())
}

func (c Clock) Value() (driver.Value, error) {
	return c.Long(), nil
}

// Scan accepts whatever the SQL driver hands back for a TIME column.
func (c *Clock) Scan(src any) error {
	var (
		v   Value
		err error
	)
	switch s := src.(type) {
	case Clock:
		v = s
	case string:
		v = Text(s)
	case []byte:
		v = Text(string(s))
	case time.Time:
		v = Timestamp(s)
	case time.Duration:
		v = Elapsed(s)
	case int64:
		// microseconds since midnight, as pgtype encodes TIME
		v = Elapsed(time.Duration(s) * time.Microsecond)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrUnrecognized, src)
	}
	*c, err = Normalize(v)
	return err
}
