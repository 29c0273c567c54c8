//go:build unit || e2e

package builder

import (
	"time"

	"slotbook/internal/domain/availability"
	"slotbook/internal/domain/host"

	"github.com/google/uuid"
)

type HostBuilder struct {
	ID           uuid.UUID
	Handle       string
	DisplayName  string
	Email        string
	TimeZone     string
	DurationMin  int
	BufferMin    int
	MinNoticeMin int
	CalendarIDs  []string
	Hours        map[string][]availability.BlockSpec
	Now          time.Time
}

func NewHostBuilder() *HostBuilder {
	return &HostBuilder{
		ID:          uuid.New(),
		Handle:      "ada",
		DisplayName: "Ada Lovelace",
		Email:       "ada@example.com",
		TimeZone:    "UTC",
		DurationMin: 30,
		Hours: map[string][]availability.BlockSpec{
			"mon": {{Start: "09:00", End: "12:00"}},
			"tue": {{Start: "09:00", End: "12:00"}},
			"wed": {{Start: "09:00", End: "12:00"}},
			"thu": {{Start: "09:00", End: "12:00"}},
			"fri": {{Start: "09:00", End: "12:00"}},
		},
		Now: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (b *HostBuilder) With(mutate func(*HostBuilder)) *HostBuilder {
	mutate(b)
	return b
}

func (b *HostBuilder) BuildDomain() (*host.Host, error) {
	handle, err := host.NewHandle(b.Handle)
	if err != nil {
		return nil, err
	}
	policy, err := availability.NewPolicy(b.TimeZone, b.DurationMin, b.BufferMin, b.MinNoticeMin, b.CalendarIDs)
	if err != nil {
		return nil, err
	}
	hours, err := availability.ParseWeeklyHours(b.Hours)
	if err != nil {
		return nil, err
	}
	return host.NewHost(b.ID, handle, b.DisplayName, b.Email, policy, hours, b.Now)
}
