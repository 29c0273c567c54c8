//go:build unit

package ics_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"slotbook/internal/pkg/ics"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() ics.Event {
	return ics.Event{
		UID:         "b1@slotbook",
		Sequence:    2,
		Summary:     "Call, with; Ada",
		Description: "line one\nline two",
		Start:       time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		End:         time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC),
		Organizer:   "host@example.com",
		Attendees:   []string{"guest@example.com"},
		Stamp:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func parseSingleEvent(t *testing.T, data []byte) *ical.VEvent {
	t.Helper()
	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 1)
	return events[0]
}

func TestRender(t *testing.T) {
	out := ics.Render(ics.MethodRequest, sampleEvent())
	text := string(out)

	assert.True(t, strings.HasPrefix(text, "BEGIN:VCALENDAR\r\n"))
	assert.Contains(t, text, "METHOD:REQUEST\r\n")
	assert.Contains(t, text, "DTSTART:20250602T100000Z\r\n")
	assert.Contains(t, text, "DTEND:20250602T103000Z\r\n")
	assert.Contains(t, text, `SUMMARY:Call\, with\; Ada`)
	assert.Contains(t, text, "mailto:guest@example.com")

	ev := parseSingleEvent(t, out)
	assert.Equal(t, "b1@slotbook", ev.Id())
	assert.Equal(t, "2", ev.GetProperty(ical.ComponentPropertySequence).Value)
	assert.Equal(t, "CONFIRMED", ev.GetProperty(ical.ComponentPropertyStatus).Value)
	assert.Equal(t, "mailto:host@example.com", ev.GetProperty(ical.ComponentPropertyOrganizer).Value)

	start, err := ev.GetStartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(sampleEvent().Start))
}

func TestRenderCancel(t *testing.T) {
	out := ics.Render(ics.MethodCancel, sampleEvent())

	assert.Contains(t, string(out), "METHOD:CANCEL\r\n")
	ev := parseSingleEvent(t, out)
	assert.Equal(t, "CANCELLED", ev.GetProperty(ical.ComponentPropertyStatus).Value)
}

func TestRenderFoldsLongLines(t *testing.T) {
	ev := sampleEvent()
	ev.Summary = strings.Repeat("a", 200)
	out := ics.Render(ics.MethodRequest, ev)

	folded := false
	for _, line := range strings.Split(string(out), "\r\n") {
		if strings.HasPrefix(line, " ") {
			folded = true
		}
	}
	assert.True(t, folded, "a 200 octet summary must be folded")

	parsed := parseSingleEvent(t, out)
	assert.Equal(t, ev.Summary, parsed.GetProperty(ical.ComponentPropertySummary).Value)
}
