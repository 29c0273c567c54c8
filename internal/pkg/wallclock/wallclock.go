// Package wallclock converts between local wall-clock values in a named
// time zone and absolute instants.
package wallclock

import (
	"fmt"
	"strings"
	"time"

	"slotbook/internal/pkg/errs"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidDate      = errs.Mark(errs.New("invalid date, expected YYYY-MM-DD"), errs.ErrValidation)
	ErrInvalidTimeOfDay = errs.Mark(errs.New("invalid time of day, expected HH:MM"), errs.ErrValidation)
	ErrInvalidWeekday   = errs.Mark(errs.New("invalid weekday"), errs.ErrValidation)
	ErrInvalidTimeZone  = errs.Mark(errs.New("invalid time zone"), errs.ErrValidation)
)

// Date is a calendar date without a zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, errs.Wrapf(ErrInvalidDate, "parse %q", s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf returns the local date of instant t in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	lt := t.In(loc)
	return Date{Year: lt.Year(), Month: lt.Month(), Day: lt.Day()}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Weekday()
}

// At resolves the wall time tod on d in loc. The offset in effect at that
// local date and time is used. Times inside a spring-forward gap move
// forward by the gap; times repeated by a fall-back resolve to the first
// occurrence.
func (d Date) At(tod TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, tod.Hour, tod.Minute, 0, 0, loc)
}

// DayBounds returns the half-open instant range covering d in loc.
func DayBounds(d Date, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
	end := time.Date(d.Year, d.Month, d.Day+1, 0, 0, 0, 0, loc)
	return start, end
}

// TimeOfDay is a local wall-clock time with minute precision. Hour 24 with
// minute 0 is accepted to express end of day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if len(s) != 5 || s[2] != ':' || !isDigits(s[:2]) || !isDigits(s[3:]) {
		return TimeOfDay{}, errs.Wrapf(ErrInvalidTimeOfDay, "parse %q", s)
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 24 || m > 59 || (h == 24 && m != 0) {
		return TimeOfDay{}, errs.Wrapf(ErrInvalidTimeOfDay, "parse %q", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Before(o TimeOfDay) bool {
	return t.Minutes() < o.Minutes()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func LoadZone(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.Wrap(ErrInvalidTimeZone, "empty zone name")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errs.Wrapf(ErrInvalidTimeZone, "load %q", name)
	}
	return loc, nil
}

var weekdayKeys = [...]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// WeekdayKey returns the three-letter lowercase key used by working hours.
func WeekdayKey(d time.Weekday) string {
	return weekdayKeys[d]
}

// ParseWeekdayKey accepts short or full English names in any case.
func ParseWeekdayKey(s string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if len(key) >= 3 {
		for i, k := range weekdayKeys {
			if key == k || key == strings.ToLower(time.Weekday(i).String()) {
				return time.Weekday(i), nil
			}
		}
	}
	return 0, errs.Wrapf(ErrInvalidWeekday, "parse %q", s)
}
