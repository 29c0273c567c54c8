package converter

import (
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/reminder"
	"slotbook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingColumns is the select list matching BookingRow.Scan targets.
const BookingColumns = `b.id, b.host_id, b.guest_name, b.guest_email, b.start_time, b.end_time,
	b.status, b.reschedule_count, b.cancel_nonce, b.reschedule_nonce, b.calendar_id,
	b.external_event_id, b.cancel_reason, b.created_at, b.updated_at`

type BookingRow struct {
	ID              uuid.UUID
	HostID          uuid.UUID
	GuestName       string
	GuestEmail      string
	StartTime       pgtype.Timestamptz
	EndTime         pgtype.Timestamptz
	Status          string
	RescheduleCount int32
	CancelNonce     pgtype.Text
	RescheduleNonce pgtype.Text
	CalendarID      string
	ExternalEventID pgtype.Text
	CancelReason    pgtype.Text
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

func (r *BookingRow) Targets() []any {
	return []any{
		&r.ID, &r.HostID, &r.GuestName, &r.GuestEmail, &r.StartTime, &r.EndTime,
		&r.Status, &r.RescheduleCount, &r.CancelNonce, &r.RescheduleNonce, &r.CalendarID,
		&r.ExternalEventID, &r.CancelReason, &r.CreatedAt, &r.UpdatedAt,
	}
}

type ReminderRow struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	Type      string
	SendAt    pgtype.Timestamptz
	SentAt    pgtype.Timestamptz
}

func ReminderFromRow(row ReminderRow) reminder.Reminder {
	var sentAt *time.Time
	if row.SentAt.Valid {
		t := row.SentAt.Time.UTC()
		sentAt = &t
	}
	return reminder.Reconstruct(row.ID, reminder.Type(row.Type), row.SendAt.Time.UTC(), sentAt)
}

func BookingFromRow(row BookingRow, reminders []reminder.Reminder) (*booking.Booking, error) {
	guest, err := booking.NewGuest(row.GuestName, row.GuestEmail)
	if err != nil {
		return nil, err
	}
	slot, err := booking.NewTimeSlot(row.StartTime.Time, row.EndTime.Time)
	if err != nil {
		return nil, err
	}
	tokens := booking.TokenLinks{
		CancelNonce:     row.CancelNonce.String,
		RescheduleNonce: row.RescheduleNonce.String,
	}
	return booking.ReconstructBooking(
		row.ID, row.HostID,
		guest,
		slot,
		booking.Status(row.Status),
		int(row.RescheduleCount),
		reminders,
		tokens,
		row.CalendarID,
		pgconv.StringPtrFromPgtype(row.ExternalEventID),
		pgconv.StringPtrFromPgtype(row.CancelReason),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

// NullableText stores empty strings as NULL.
func NullableText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgconv.StringToPgtype(s)
}
