package queries

import (
	"time"

	"slotbook/internal/domain/availability"
	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/reminder"

	"github.com/google/uuid"
)

// HostProfileView is the public face of a host.
type HostProfileView struct {
	ID          uuid.UUID
	Handle      string
	DisplayName string
	TimeZone    string
	DurationMin int
}

type SlotView struct {
	Start      time.Time
	End        time.Time
	LocalStart string
	LocalEnd   string
}

type SlotsView struct {
	Date        string
	TimeZone    string
	DurationMin int
	Slots       []SlotView
	// CalendarChecked is false when the external calendar could not be
	// consulted and the slots reflect working hours and bookings only.
	CalendarChecked bool
}

type ReminderView struct {
	Type   string
	SendAt time.Time
	SentAt *time.Time
}

type BookingView struct {
	ID              uuid.UUID
	HostID          uuid.UUID
	GuestName       string
	GuestEmail      string
	Start           time.Time
	End             time.Time
	Status          string
	RescheduleCount int
	CancelReason    *string
	Reminders       []ReminderView
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// GuestBookingView is what a token holder sees on the manage page.
type GuestBookingView struct {
	Booking         BookingView
	HostDisplayName string
	HostTimeZone    string
	Purpose         string
}

const localLayout = "2006-01-02T15:04:05-07:00"

func NewSlotView(s availability.Slot, loc *time.Location) SlotView {
	return SlotView{
		Start:      s.StartUTC,
		End:        s.EndUTC,
		LocalStart: s.StartUTC.In(loc).Format(localLayout),
		LocalEnd:   s.EndUTC.In(loc).Format(localLayout),
	}
}

func NewBookingView(b *booking.Booking) BookingView {
	v := BookingView{
		ID:              b.ID(),
		HostID:          b.HostID(),
		GuestName:       b.Guest().Name(),
		GuestEmail:      b.Guest().Email(),
		Start:           b.TimeSlot().Start(),
		End:             b.TimeSlot().End(),
		Status:          b.Status().String(),
		RescheduleCount: b.RescheduleCount(),
		CancelReason:    b.CancelReason(),
		CreatedAt:       b.CreatedAt(),
		UpdatedAt:       b.UpdatedAt(),
	}
	for _, r := range b.Reminders() {
		v.Reminders = append(v.Reminders, newReminderView(r))
	}
	return v
}

func newReminderView(r reminder.Reminder) ReminderView {
	return ReminderView{Type: r.Type().String(), SendAt: r.SendAt(), SentAt: r.SentAt()}
}
