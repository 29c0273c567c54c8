package calendar

import (
	"context"
	"time"

	"slotbook/internal/domain/availability"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrGoogleNotConfigured = errs.Mark(errs.New("google calendar is not configured"), errs.ErrUnavailable)

// Disabled is used when no OAuth2 client is configured. Every host looks
// unconnected, so busy checks see no intervals and mirroring is skipped.
type Disabled struct{}

func (Disabled) ListBusy(context.Context, uuid.UUID, []string, time.Time, time.Time) ([]availability.BusyInterval, error) {
	return nil, shared.ErrCalendarNotConnected
}

func (Disabled) InsertEvent(context.Context, uuid.UUID, string, shared.CalendarEvent) (string, error) {
	return "", shared.ErrCalendarNotConnected
}

func (Disabled) UpdateEvent(context.Context, uuid.UUID, string, string, shared.CalendarEvent) error {
	return shared.ErrCalendarNotConnected
}

func (Disabled) DeleteEvent(context.Context, uuid.UUID, string, string) error {
	return shared.ErrCalendarNotConnected
}

func (Disabled) AuthCodeURL(string) string { return "" }

func (Disabled) Exchange(context.Context, uuid.UUID, string) error {
	return ErrGoogleNotConfigured
}
