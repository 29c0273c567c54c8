package repository

import (
	"context"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/reminder"
	"slotbook/internal/infra"
	"slotbook/internal/infra/db"
	"slotbook/internal/infra/repository/converter"
	"slotbook/internal/pkg/pgconv"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	insertBookingSQL = `
INSERT INTO bookings (
	id, host_id, guest_name, guest_email, start_time, end_time, status, reschedule_count,
	cancel_nonce, reschedule_nonce, calendar_id, external_event_id, cancel_reason, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	updateBookingSQL = `
UPDATE bookings SET
	start_time = $2,
	end_time = $3,
	status = $4,
	reschedule_count = $5,
	cancel_nonce = $6,
	reschedule_nonce = $7,
	external_event_id = $8,
	cancel_reason = $9,
	updated_at = $10
WHERE id = $1`

	selectBookingSQL = `SELECT ` + converter.BookingColumns + ` FROM bookings b`

	// Canceled bookings are filtered before the limit so their leftover
	// pending rows can never fill a batch.
	listDueRemindersSQL = `
WITH due AS (
	SELECT br.booking_id, min(br.send_at) AS first_due
	FROM booking_reminders br
	JOIN bookings ob ON ob.id = br.booking_id
	WHERE br.sent_at IS NULL AND br.send_at <= $1 AND ob.status <> 'canceled'
	GROUP BY br.booking_id
)
SELECT ` + converter.BookingColumns + `
FROM bookings b
JOIN due ON due.booking_id = b.id
WHERE $2::timestamptz IS NULL OR (due.first_due, b.id) > ($2::timestamptz, $3::uuid)
ORDER BY due.first_due, b.id
LIMIT $4`

	deleteStaleRemindersSQL = `
DELETE FROM booking_reminders
WHERE booking_id = $1 AND sent_at IS NULL AND NOT (id = ANY($2::uuid[]))`

	insertReminderSQL = `
INSERT INTO booking_reminders (id, booking_id, type, send_at, sent_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING`

	selectRemindersSQL = `
SELECT id, booking_id, type, send_at, sent_at
FROM booking_reminders
WHERE booking_id = ANY($1::uuid[])
ORDER BY send_at, id`

	markReminderSentSQL = `
UPDATE booking_reminders SET sent_at = $3
WHERE id = $2 AND booking_id = $1 AND sent_at IS NULL`
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	slot := b.TimeSlot()
	tokens := b.Tokens()
	_, err := r.db.Exec(ctx, insertBookingSQL,
		b.ID(), b.HostID(), b.Guest().Name(), b.Guest().Email(),
		pgconv.TimeToPgtype(slot.Start()), pgconv.TimeToPgtype(slot.End()),
		b.Status().String(), int32(b.RescheduleCount()),
		converter.NullableText(tokens.CancelNonce), converter.NullableText(tokens.RescheduleNonce),
		b.CalendarID(),
		pgconv.StringPtrToPgtype(b.ExternalEventID()), pgconv.StringPtrToPgtype(b.CancelReason()),
		pgconv.TimeToPgtype(b.CreatedAt()), pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return r.syncReminders(ctx, b.ID(), b.Reminders())
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	slot := b.TimeSlot()
	tokens := b.Tokens()
	tag, err := r.db.Exec(ctx, updateBookingSQL,
		b.ID(),
		pgconv.TimeToPgtype(slot.Start()), pgconv.TimeToPgtype(slot.End()),
		b.Status().String(), int32(b.RescheduleCount()),
		converter.NullableText(tokens.CancelNonce), converter.NullableText(tokens.RescheduleNonce),
		pgconv.StringPtrToPgtype(b.ExternalEventID()), pgconv.StringPtrToPgtype(b.CancelReason()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepositoryError(infra.KindNotFound, "booking not found")
	}
	return r.syncReminders(ctx, b.ID(), b.Reminders())
}

// syncReminders drops pending rows that are no longer wanted and inserts new
// ones. Rows already stamped as sent are left alone.
func (r *BookingRepository) syncReminders(ctx context.Context, bookingID uuid.UUID, reminders []reminder.Reminder) error {
	keep := make([]uuid.UUID, 0, len(reminders))
	for _, rem := range reminders {
		keep = append(keep, rem.ID())
	}
	if _, err := r.db.Exec(ctx, deleteStaleRemindersSQL, bookingID, keep); err != nil {
		return infra.WrapRepoErr("failed to delete stale reminders", err)
	}
	for _, rem := range reminders {
		var sentAt any
		if s := rem.SentAt(); s != nil {
			sentAt = pgconv.TimeToPgtype(*s)
		}
		_, err := r.db.Exec(ctx, insertReminderSQL,
			rem.ID(), bookingID, rem.Type().String(), pgconv.TimeToPgtype(rem.SendAt()), sentAt)
		if err != nil {
			return infra.WrapRepoErr("failed to insert reminder", err)
		}
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.findOne(ctx, selectBookingSQL+` WHERE b.id = $1`, id)
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.findOne(ctx, selectBookingSQL+` WHERE b.id = $1 FOR UPDATE`, id)
}

func (r *BookingRepository) FindByTokenNonce(ctx context.Context, nonce string) (*booking.Booking, error) {
	return r.findOne(ctx, selectBookingSQL+` WHERE b.cancel_nonce = $1 OR b.reschedule_nonce = $1`, nonce)
}

func (r *BookingRepository) ListActiveOverlapping(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]*booking.Booking, error) {
	return r.findMany(ctx, selectBookingSQL+`
WHERE b.host_id = $1 AND b.status <> 'canceled' AND b.start_time < $3 AND b.end_time > $2
ORDER BY b.start_time, b.id`,
		hostID, pgconv.TimeToPgtype(from), pgconv.TimeToPgtype(to))
}

func (r *BookingRepository) ListByHost(ctx context.Context, hostID uuid.UUID, from, to time.Time) ([]*booking.Booking, error) {
	return r.findMany(ctx, selectBookingSQL+`
WHERE b.host_id = $1 AND b.start_time >= $2 AND b.start_time < $3
ORDER BY b.start_time, b.id`,
		hostID, pgconv.TimeToPgtype(from), pgconv.TimeToPgtype(to))
}

func (r *BookingRepository) ListWithDueReminders(ctx context.Context, now time.Time, after *shared.DueCursor, limit int) ([]*booking.Booking, error) {
	afterDue, afterID := pgtype.Timestamptz{}, uuid.Nil
	if after != nil {
		afterDue, afterID = pgconv.TimeToPgtype(after.FirstDue), after.BookingID
	}
	return r.findMany(ctx, listDueRemindersSQL,
		pgconv.TimeToPgtype(now), afterDue, afterID, int32(limit))
}

func (r *BookingRepository) MarkReminderSent(ctx context.Context, bookingID, reminderID uuid.UUID, sentAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, markReminderSentSQL, bookingID, reminderID, pgconv.TimeToPgtype(sentAt))
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark reminder sent", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BookingRepository) SetExternalEventID(ctx context.Context, bookingID uuid.UUID, eventID *string) error {
	tag, err := r.db.Exec(ctx, `UPDATE bookings SET external_event_id = $2 WHERE id = $1`,
		bookingID, pgconv.StringPtrToPgtype(eventID))
	if err != nil {
		return infra.WrapRepoErr("failed to set external event id", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepositoryError(infra.KindNotFound, "booking not found")
	}
	return nil
}

func (r *BookingRepository) findOne(ctx context.Context, query string, args ...any) (*booking.Booking, error) {
	var row converter.BookingRow
	if err := r.db.QueryRow(ctx, query, args...).Scan(row.Targets()...); err != nil {
		return nil, infra.WrapRepoErr("failed to get booking", err)
	}
	reminders, err := r.loadReminders(ctx, []uuid.UUID{row.ID})
	if err != nil {
		return nil, err
	}
	b, err := converter.BookingFromRow(row, reminders[row.ID])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert booking", err, infra.KindDBFailure)
	}
	return b, nil
}

func (r *BookingRepository) findMany(ctx context.Context, query string, args ...any) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	collected, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (converter.BookingRow, error) {
		var br converter.BookingRow
		err := row.Scan(br.Targets()...)
		return br, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan bookings", err, infra.KindDBFailure)
	}
	if len(collected) == 0 {
		return []*booking.Booking{}, nil
	}

	ids := make([]uuid.UUID, len(collected))
	for i, row := range collected {
		ids[i] = row.ID
	}
	reminders, err := r.loadReminders(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*booking.Booking, 0, len(collected))
	for _, row := range collected {
		b, err := converter.BookingFromRow(row, reminders[row.ID])
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert booking", err, infra.KindDBFailure)
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *BookingRepository) loadReminders(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]reminder.Reminder, error) {
	rows, err := r.db.Query(ctx, selectRemindersSQL, bookingIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reminders", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByPos[converter.ReminderRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan reminders", err, infra.KindDBFailure)
	}
	out := make(map[uuid.UUID][]reminder.Reminder, len(bookingIDs))
	for _, row := range collected {
		out[row.BookingID] = append(out[row.BookingID], converter.ReminderFromRow(row))
	}
	return out, nil
}
