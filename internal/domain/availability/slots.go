package availability

import (
	"sort"
	"time"

	"slotbook/internal/pkg/wallclock"
)

// GenerateSlots walks each working-hours block on date in steps of the
// duration. A slot is kept only when its buffered window starts strictly
// after now plus the minimum notice. Overlapping blocks are merged first, so
// the result never contains overlapping slots. Blocks that merely touch stay
// separate.
func GenerateSlots(
	date wallclock.Date,
	loc *time.Location,
	blocks []WorkingHoursBlock,
	durationMin, bufferMin, minNoticeMin int,
	now time.Time,
) []Slot {
	if durationMin <= 0 || loc == nil {
		return nil
	}

	duration := time.Duration(durationMin) * time.Minute
	buffer := time.Duration(bufferMin) * time.Minute
	threshold := now.Add(time.Duration(minNoticeMin) * time.Minute)

	var slots []Slot
	for _, block := range mergeBlocks(blocks) {
		blockStart := date.At(block.start, loc)
		blockEnd := date.At(block.end, loc)

		for cursor := blockStart; !cursor.Add(duration).After(blockEnd); cursor = cursor.Add(duration) {
			end := cursor.Add(duration)
			windowStart := cursor.Add(-buffer)
			if !windowStart.After(threshold) {
				continue
			}
			slots = append(slots, Slot{
				StartUTC:       cursor.UTC(),
				EndUTC:         end.UTC(),
				WindowStartUTC: windowStart.UTC(),
				WindowEndUTC:   end.Add(buffer).UTC(),
			})
		}
	}
	return slots
}

// CandidateSlots generates the slots for date using a host's policy and
// weekly hours. The weekday is taken from the local date itself.
func CandidateSlots(date wallclock.Date, policy Policy, hours WeeklyHours, now time.Time) []Slot {
	return GenerateSlots(
		date,
		policy.Location(),
		hours.For(date.Weekday()),
		policy.DurationMin(),
		policy.BufferMin(),
		policy.MinNoticeMin(),
		now,
	)
}

// FindSlot returns the slot with exactly the given bounds.
func FindSlot(slots []Slot, start, end time.Time) (Slot, bool) {
	for _, s := range slots {
		if s.StartUTC.Equal(start) && s.EndUTC.Equal(end) {
			return s, true
		}
	}
	return Slot{}, false
}

func mergeBlocks(blocks []WorkingHoursBlock) []WorkingHoursBlock {
	if len(blocks) < 2 {
		return blocks
	}
	sorted := make([]WorkingHoursBlock, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].start.Before(sorted[j].start)
	})

	merged := []WorkingHoursBlock{sorted[0]}
	for _, b := range sorted[1:] {
		last := &merged[len(merged)-1]
		if b.start.Before(last.end) {
			if last.end.Before(b.end) {
				last.end = b.end
			}
			continue
		}
		merged = append(merged, b)
	}
	return merged
}
