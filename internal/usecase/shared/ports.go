package shared

import (
	"context"
	"fmt"
	"time"

	"slotbook/internal/domain/availability"
	"slotbook/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrCalendarNotConnected is returned by calendar providers for hosts that
// have no stored credentials.
var ErrCalendarNotConnected = errs.New("calendar not connected")

// CalendarProvider talks to the host's external calendar.
type CalendarProvider interface {
	ListBusy(ctx context.Context, hostID uuid.UUID, calendarIDs []string, timeMin, timeMax time.Time) ([]availability.BusyInterval, error)
	InsertEvent(ctx context.Context, hostID uuid.UUID, calendarID string, ev CalendarEvent) (string, error)
	UpdateEvent(ctx context.Context, hostID uuid.UUID, calendarID, eventID string, ev CalendarEvent) error
	DeleteEvent(ctx context.Context, hostID uuid.UUID, calendarID, eventID string) error
}

type CalendarEvent struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
	Attendees   []string
}

type NotificationSender interface {
	Send(ctx context.Context, msg Message) error
}

type Message struct {
	To          []string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type EventPublisher interface {
	Publish(ctx context.Context, ev BookingEvent) error
}

type BookingEventType string

const (
	EventBookingCreated     BookingEventType = "booking.created"
	EventBookingCanceled    BookingEventType = "booking.canceled"
	EventBookingRescheduled BookingEventType = "booking.rescheduled"
	EventBookingConfirmed   BookingEventType = "booking.confirmed"
	EventReminderSent       BookingEventType = "booking.reminder_sent"
)

type BookingEvent struct {
	ID              uuid.UUID        `json:"event_id"`
	Type            BookingEventType `json:"event_type"`
	BookingID       uuid.UUID        `json:"booking_id"`
	HostID          uuid.UUID        `json:"host_id"`
	Status          string           `json:"status"`
	StartTime       time.Time        `json:"start_time"`
	EndTime         time.Time        `json:"end_time"`
	RescheduleCount int              `json:"reschedule_count"`
	OccurredAt      time.Time        `json:"occurred_at"`
}

// TokenMarkerStore keeps replay markers for action tokens. Consume is an
// atomic check-and-set: it reports false when the marker already existed.
type TokenMarkerStore interface {
	IsConsumed(ctx context.Context, key MarkerKey) (bool, error)
	Consume(ctx context.Context, key MarkerKey) (bool, error)
	Release(ctx context.Context, key MarkerKey) error
}

type MarkerKey struct {
	SubjectID uuid.UUID
	Purpose   string
	Nonce     string
}

func (k MarkerKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.SubjectID, k.Purpose, k.Nonce)
}
