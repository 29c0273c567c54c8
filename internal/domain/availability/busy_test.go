//go:build unit

package availability_test

import (
	"math/rand"
	"testing"
	"time"

	"slotbook/internal/domain/availability"
	"slotbook/internal/pkg/wallclock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m int) time.Time {
	return time.Date(2025, 6, 2, h, m, 0, 0, time.UTC)
}

func TestFilterBusy(t *testing.T) {
	date := wallclock.Date{Year: 2025, Month: time.June, Day: 2}
	block := []availability.WorkingHoursBlock{mustBlock(t, "09:00", "12:00")}
	slots := availability.GenerateSlots(date, time.UTC, block, 30, 0, 0, at(0, 0))
	require.Len(t, slots, 6)

	cases := []struct {
		name string
		busy []availability.BusyInterval
		want []string
	}{
		{
			name: "no busy intervals",
			want: []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		},
		{
			name: "touching endpoints do not overlap",
			busy: []availability.BusyInterval{{Start: at(8, 0), End: at(9, 0)}, {Start: at(12, 0), End: at(13, 0)}},
			want: []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		},
		{
			name: "partial overlap removes the slot",
			busy: []availability.BusyInterval{{Start: at(10, 15), End: at(10, 45)}},
			want: []string{"09:00", "09:30", "11:00", "11:30"},
		},
		{
			name: "overlapping busy intervals",
			busy: []availability.BusyInterval{
				{Start: at(9, 0), End: at(9, 40)},
				{Start: at(9, 20), End: at(10, 0)},
			},
			want: []string{"10:00", "10:30", "11:00", "11:30"},
		},
		{
			name: "busy covering the whole day",
			busy: []availability.BusyInterval{{Start: at(0, 0), End: at(23, 59)}},
			want: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := availability.FilterBusy(slots, tc.busy)
			assert.Equal(t, tc.want, starts(got, time.UTC))
		})
	}

	assert.Len(t, slots, 6, "input must not be modified")
}

func TestFilterBusyUsesBufferedWindow(t *testing.T) {
	date := wallclock.Date{Year: 2025, Month: time.June, Day: 2}
	slots := availability.GenerateSlots(date, time.UTC, []availability.WorkingHoursBlock{mustBlock(t, "09:00", "11:00")}, 60, 10, 0, at(0, 0))
	require.Len(t, slots, 2)

	// Busy 10:05-10:30 misses the 09:00 slot itself but hits its 10:10 window end.
	got := availability.FilterBusy(slots, []availability.BusyInterval{{Start: at(10, 5), End: at(10, 30)}})
	assert.Empty(t, got)

	got = availability.FilterBusy(slots, []availability.BusyInterval{{Start: at(8, 0), End: at(8, 50)}})
	assert.Equal(t, []string{"09:00", "10:00"}, starts(got, time.UTC))
}

func TestFilterBusyProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	date := wallclock.Date{Year: 2025, Month: time.June, Day: 2}
	slots := availability.GenerateSlots(date, time.UTC, []availability.WorkingHoursBlock{mustBlock(t, "06:00", "20:00")}, 15, 5, 0, at(0, 0))

	for i := 0; i < 100; i++ {
		var busy []availability.BusyInterval
		for j := 0; j < rng.Intn(10); j++ {
			start := at(0, 0).Add(time.Duration(rng.Intn(24*60)) * time.Minute)
			busy = append(busy, availability.BusyInterval{Start: start, End: start.Add(time.Duration(1+rng.Intn(180)) * time.Minute)})
		}
		for _, s := range availability.FilterBusy(slots, busy) {
			for _, b := range busy {
				assert.False(t, s.WindowStartUTC.Before(b.End) && b.Start.Before(s.WindowEndUTC))
			}
		}
	}
}

func TestOverlaps(t *testing.T) {
	assert.True(t, availability.Overlaps(at(9, 0), at(10, 0), at(9, 59), at(11, 0)))
	assert.False(t, availability.Overlaps(at(9, 0), at(10, 0), at(10, 0), at(11, 0)))
	assert.False(t, availability.Overlaps(at(10, 0), at(11, 0), at(9, 0), at(10, 0)))
	assert.True(t, availability.Overlaps(at(9, 0), at(12, 0), at(10, 0), at(11, 0)))
}
