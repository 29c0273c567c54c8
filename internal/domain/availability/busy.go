package availability

import "time"

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func (s Slot) OverlapsBusy(b BusyInterval) bool {
	return Overlaps(s.WindowStartUTC, s.WindowEndUTC, b.Start, b.End)
}

func (s Slot) OverlapsAny(busy []BusyInterval) bool {
	for _, b := range busy {
		if s.OverlapsBusy(b) {
			return true
		}
	}
	return false
}

// FilterBusy drops every slot whose buffered window overlaps a busy interval.
// The input is not modified.
func FilterBusy(slots []Slot, busy []BusyInterval) []Slot {
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if !s.OverlapsAny(busy) {
			out = append(out, s)
		}
	}
	return out
}
