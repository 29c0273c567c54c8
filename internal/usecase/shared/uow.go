package shared

import (
	"bytes"
	"context"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/host"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Repositories bound to the pool for reads and single-statement writes
	Repositories
}

type Tx interface {
	Repositories
}

type Repositories interface {
	Bookings() BookingRepository
	Hosts() HostRepository
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// Update persists status, time slot, counters, token links, external event
	// id and pending reminders. Sent reminders are never rewritten.
	Update(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindByTokenNonce(ctx context.Context, nonce string) (*booking.Booking, error)
	// ListActiveOverlapping returns non-canceled bookings of a host that
	// intersect [from, to).
	ListActiveOverlapping(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]*booking.Booking, error)
	ListByHost(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]*booking.Booking, error)
	// ListWithDueReminders returns non-canceled bookings holding pending
	// reminders due at now, ordered by earliest due send time then id, and
	// strictly after the cursor when one is given.
	ListWithDueReminders(ctx context.Context, now time.Time, after *DueCursor, limit int) ([]*booking.Booking, error)
	// MarkReminderSent stamps sent_at only if it is still unset.
	MarkReminderSent(ctx context.Context, bookingID, reminderID uuid.UUID, sentAt time.Time) (bool, error)
	SetExternalEventID(ctx context.Context, bookingID uuid.UUID, eventID *string) error
}

// DueCursor resumes a due-reminder scan after the last booking returned.
type DueCursor struct {
	FirstDue  time.Time
	BookingID uuid.UUID
}

// DueCursorOf positions a cursor at b. It must be taken before any of b's
// reminders are stamped sent.
func DueCursorOf(b *booking.Booking, now time.Time) DueCursor {
	c := DueCursor{BookingID: b.ID()}
	for i, r := range b.DueReminders(now) {
		if i == 0 || r.SendAt().Before(c.FirstDue) {
			c.FirstDue = r.SendAt()
		}
	}
	return c
}

// Before reports whether c sorts strictly before (firstDue, id).
func (c DueCursor) Before(firstDue time.Time, id uuid.UUID) bool {
	if !firstDue.Equal(c.FirstDue) {
		return c.FirstDue.Before(firstDue)
	}
	return bytes.Compare(c.BookingID[:], id[:]) < 0
}

type HostRepository interface {
	Create(ctx context.Context, h *host.Host) error
	Update(ctx context.Context, h *host.Host) error
	FindByID(ctx context.Context, id uuid.UUID) (*host.Host, error)
	FindByHandle(ctx context.Context, handle string) (*host.Host, error)
}
