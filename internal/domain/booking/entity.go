package booking

import (
	"strings"
	"time"

	"slotbook/internal/domain/reminder"
	"slotbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCanceled = errs.Mark(errs.New("booking is already canceled"), errs.ErrAlreadyCanceled)
	ErrSameSlot        = errs.Mark(errs.New("new time is the same as the current time"), errs.ErrValidation)
	ErrInvalidStatus   = errs.New("invalid booking status")
)

type Booking struct {
	id              uuid.UUID
	hostID          uuid.UUID
	guest           Guest
	timeSlot        TimeSlot
	status          Status
	rescheduleCount int
	reminders       []reminder.Reminder
	tokens          TokenLinks
	calendarID      string
	externalEventID *string
	cancelReason    *string
	createdAt       time.Time
	updatedAt       time.Time
}

// NewBooking creates a scheduled booking with its initial reminders.
func NewBooking(hostID uuid.UUID, guest Guest, slot TimeSlot, calendarID string, now time.Time) *Booking {
	now = now.UTC()
	return &Booking{
		id:         uuid.New(),
		hostID:     hostID,
		guest:      guest,
		timeSlot:   slot,
		status:     StatusScheduled,
		reminders:  reminder.Calculate(slot.Start(), now),
		calendarID: calendarID,
		createdAt:  now,
		updatedAt:  now,
	}
}

func ReconstructBooking(
	id, hostID uuid.UUID,
	guest Guest,
	timeSlot TimeSlot,
	status Status,
	rescheduleCount int,
	reminders []reminder.Reminder,
	tokens TokenLinks,
	calendarID string,
	externalEventID, cancelReason *string,
	createdAt, updatedAt time.Time,
) (*Booking, error) {
	if !status.IsValid() {
		return nil, errs.Wrapf(ErrInvalidStatus, "status %q", status)
	}
	return &Booking{
		id:              id,
		hostID:          hostID,
		guest:           guest,
		timeSlot:        timeSlot,
		status:          status,
		rescheduleCount: rescheduleCount,
		reminders:       reminders,
		tokens:          tokens,
		calendarID:      calendarID,
		externalEventID: externalEventID,
		cancelReason:    cancelReason,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (b *Booking) IsCanceled() bool {
	return b.status == StatusCanceled
}

func (b *Booking) OwnedBy(hostID uuid.UUID) bool {
	return b.hostID == hostID
}

func (b *Booking) MatchesGuestEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(email), b.guest.email)
}

func (b *Booking) LinkTokens(links TokenLinks) {
	b.tokens = links
}

func (b *Booking) Cancel(reason *string, now time.Time) error {
	if b.IsCanceled() {
		return ErrAlreadyCanceled
	}
	b.status = StatusCanceled
	b.cancelReason = reason
	b.updatedAt = now.UTC()
	return nil
}

func (b *Booking) Confirm(now time.Time) error {
	if b.IsCanceled() {
		return ErrAlreadyCanceled
	}
	if b.status == StatusConfirmed {
		return nil
	}
	b.status = StatusConfirmed
	b.updatedAt = now.UTC()
	return nil
}

// Reschedule moves the booking, keeping its status. Reminders already sent
// are preserved and the rest are recomputed for the new start.
func (b *Booking) Reschedule(slot TimeSlot, now time.Time) error {
	if b.IsCanceled() {
		return ErrAlreadyCanceled
	}
	if b.timeSlot.Equal(slot) {
		return ErrSameSlot
	}
	b.timeSlot = slot
	b.rescheduleCount++
	b.reminders = reminder.Recompute(b.reminders, slot.Start(), now)
	b.updatedAt = now.UTC()
	return nil
}

// DueReminders is always empty for a canceled booking.
func (b *Booking) DueReminders(now time.Time) []reminder.Reminder {
	if b.IsCanceled() {
		return nil
	}
	return reminder.Due(b.reminders, now)
}

func (b *Booking) MarkReminderSent(id uuid.UUID, now time.Time) {
	b.reminders = reminder.MarkSent(b.reminders, id, now)
}

func (b *Booking) SetExternalEventID(id string) {
	if id == "" {
		b.externalEventID = nil
		return
	}
	b.externalEventID = &id
}

func (b *Booking) ID() uuid.UUID            { return b.id }
func (b *Booking) HostID() uuid.UUID        { return b.hostID }
func (b *Booking) Guest() Guest             { return b.guest }
func (b *Booking) TimeSlot() TimeSlot       { return b.timeSlot }
func (b *Booking) Status() Status           { return b.status }
func (b *Booking) RescheduleCount() int     { return b.rescheduleCount }
func (b *Booking) Tokens() TokenLinks       { return b.tokens }
func (b *Booking) CalendarID() string       { return b.calendarID }
func (b *Booking) ExternalEventID() *string { return b.externalEventID }
func (b *Booking) CancelReason() *string    { return b.cancelReason }
func (b *Booking) CreatedAt() time.Time     { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time     { return b.updatedAt }

func (b *Booking) Reminders() []reminder.Reminder {
	out := make([]reminder.Reminder, len(b.reminders))
	copy(out, b.reminders)
	return out
}
