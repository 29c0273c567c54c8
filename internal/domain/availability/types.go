package availability

import (
	"slices"
	"strings"
	"time"

	"slotbook/internal/pkg/errs"
	"slotbook/internal/pkg/wallclock"
)

const DefaultCalendarID = "primary"

var (
	ErrInvalidBlock    = errs.Mark(errs.New("working hours block start must be before end"), errs.ErrValidation)
	ErrInvalidDuration = errs.Mark(errs.New("duration must be positive"), errs.ErrValidation)
	ErrNegativeBuffer  = errs.Mark(errs.New("buffer cannot be negative"), errs.ErrValidation)
	ErrNegativeNotice  = errs.Mark(errs.New("minimum notice cannot be negative"), errs.ErrValidation)
	ErrTooManyBlocks   = errs.Mark(errs.New("too many working hours blocks for one day"), errs.ErrValidation)
)

const (
	MaxDurationMin   = 24 * 60
	MaxBlocksPerDay  = 12
	maxCalendarIDLen = 255
)

type WorkingHoursBlock struct {
	start wallclock.TimeOfDay
	end   wallclock.TimeOfDay
}

func NewWorkingHoursBlock(start, end string) (WorkingHoursBlock, error) {
	s, err := wallclock.ParseTimeOfDay(start)
	if err != nil {
		return WorkingHoursBlock{}, err
	}
	e, err := wallclock.ParseTimeOfDay(end)
	if err != nil {
		return WorkingHoursBlock{}, err
	}
	if !s.Before(e) {
		return WorkingHoursBlock{}, errs.Wrapf(ErrInvalidBlock, "%s-%s", start, end)
	}
	return WorkingHoursBlock{start: s, end: e}, nil
}

func (b WorkingHoursBlock) Start() wallclock.TimeOfDay { return b.start }
func (b WorkingHoursBlock) End() wallclock.TimeOfDay   { return b.end }

// BlockSpec is the wire and storage shape of a block.
type BlockSpec struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeeklyHours holds the recurring blocks for each weekday.
type WeeklyHours map[time.Weekday][]WorkingHoursBlock

// ParseWeeklyHours accepts keys sun..sat (or full day names).
func ParseWeeklyHours(raw map[string][]BlockSpec) (WeeklyHours, error) {
	hours := make(WeeklyHours, len(raw))
	for key, specs := range raw {
		day, err := wallclock.ParseWeekdayKey(key)
		if err != nil {
			return nil, err
		}
		if len(specs) > MaxBlocksPerDay {
			return nil, errs.Wrapf(ErrTooManyBlocks, "%s has %d blocks", key, len(specs))
		}
		for _, spec := range specs {
			block, err := NewWorkingHoursBlock(spec.Start, spec.End)
			if err != nil {
				return nil, err
			}
			hours[day] = append(hours[day], block)
		}
	}
	return hours, nil
}

func (w WeeklyHours) For(day time.Weekday) []WorkingHoursBlock {
	return w[day]
}

func (w WeeklyHours) Specs() map[string][]BlockSpec {
	out := make(map[string][]BlockSpec, len(w))
	for day, blocks := range w {
		if len(blocks) == 0 {
			continue
		}
		specs := make([]BlockSpec, 0, len(blocks))
		for _, b := range blocks {
			specs = append(specs, BlockSpec{Start: b.start.String(), End: b.end.String()})
		}
		out[wallclock.WeekdayKey(day)] = specs
	}
	return out
}

// Policy is a host's scheduling policy.
type Policy struct {
	timeZone     string
	location     *time.Location
	durationMin  int
	bufferMin    int
	minNoticeMin int
	calendarIDs  []string
}

func NewPolicy(timeZone string, durationMin, bufferMin, minNoticeMin int, calendarIDs []string) (Policy, error) {
	loc, err := wallclock.LoadZone(timeZone)
	if err != nil {
		return Policy{}, err
	}
	if durationMin <= 0 || durationMin > MaxDurationMin {
		return Policy{}, errs.Wrapf(ErrInvalidDuration, "got %d", durationMin)
	}
	if bufferMin < 0 {
		return Policy{}, ErrNegativeBuffer
	}
	if minNoticeMin < 0 {
		return Policy{}, ErrNegativeNotice
	}
	return Policy{
		timeZone:     timeZone,
		location:     loc,
		durationMin:  durationMin,
		bufferMin:    bufferMin,
		minNoticeMin: minNoticeMin,
		calendarIDs:  normalizeCalendarIDs(calendarIDs),
	}, nil
}

func normalizeCalendarIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || len(id) > maxCalendarIDLen || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	if len(out) == 0 {
		out = append(out, DefaultCalendarID)
	}
	return out
}

func (p Policy) TimeZone() string         { return p.timeZone }
func (p Policy) Location() *time.Location { return p.location }
func (p Policy) DurationMin() int         { return p.durationMin }
func (p Policy) BufferMin() int           { return p.bufferMin }
func (p Policy) MinNoticeMin() int        { return p.minNoticeMin }

func (p Policy) CalendarIDs() []string {
	return slices.Clone(p.calendarIDs)
}

// PrimaryCalendarID is where mirrored booking events are written.
func (p Policy) PrimaryCalendarID() string {
	return p.calendarIDs[0]
}

func (p Policy) Duration() time.Duration {
	return time.Duration(p.durationMin) * time.Minute
}

// Slot is a bookable interval. The window fields are padded by the buffer
// and are only used for overlap tests.
type Slot struct {
	StartUTC       time.Time
	EndUTC         time.Time
	WindowStartUTC time.Time
	WindowEndUTC   time.Time
}

type BusyInterval struct {
	Start time.Time
	End   time.Time
	// CalendarID names the calendar reporting the interval, when known.
	CalendarID string
}
