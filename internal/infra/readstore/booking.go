package readstore

import (
	"context"
	"time"

	"slotbook/internal/infra"
	"slotbook/internal/infra/db"
	"slotbook/internal/pkg/pgconv"
	"slotbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	bookingListColumns = `id, host_id, guest_name, guest_email, start_time, end_time, status,
	reschedule_count, cancel_reason, created_at, updated_at`

	bookingsByHostFirstPageSQL = `
SELECT ` + bookingListColumns + `
FROM bookings
WHERE host_id = $1 AND start_time >= $2 AND start_time < $3
ORDER BY start_time, id
LIMIT $4`

	bookingsByHostKeysetSQL = `
SELECT ` + bookingListColumns + `
FROM bookings
WHERE host_id = $1 AND start_time >= $2 AND start_time < $3
	AND (start_time, id) > ($4, $5)
ORDER BY start_time, id
LIMIT $6`
)

type bookingListRow struct {
	ID              uuid.UUID
	HostID          uuid.UUID
	GuestName       string
	GuestEmail      string
	StartTime       pgtype.Timestamptz
	EndTime         pgtype.Timestamptz
	Status          string
	RescheduleCount int32
	CancelReason    pgtype.Text
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByHostFirstPage(ctx context.Context, hostID uuid.UUID, from, to time.Time, limit int32) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, bookingsByHostFirstPageSQL,
		hostID, pgconv.TimeToPgtype(from), pgconv.TimeToPgtype(to), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get bookings first page by host", err)
	}
	return collectBookingViews(rows)
}

func (r *BookingReadStore) FindByHostKeyset(ctx context.Context, hostID uuid.UUID, from, to, afterStart time.Time, afterID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, bookingsByHostKeysetSQL,
		hostID, pgconv.TimeToPgtype(from), pgconv.TimeToPgtype(to),
		pgconv.TimeToPgtype(afterStart), afterID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get bookings keyset by host", err)
	}
	return collectBookingViews(rows)
}

func collectBookingViews(rows pgx.Rows) ([]*queries.BookingView, error) {
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByPos[bookingListRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan bookings", err, infra.KindDBFailure)
	}
	out := make([]*queries.BookingView, 0, len(collected))
	for _, row := range collected {
		out = append(out, &queries.BookingView{
			ID:              row.ID,
			HostID:          row.HostID,
			GuestName:       row.GuestName,
			GuestEmail:      row.GuestEmail,
			Start:           pgconv.TimeFromPgtype(row.StartTime).UTC(),
			End:             pgconv.TimeFromPgtype(row.EndTime).UTC(),
			Status:          row.Status,
			RescheduleCount: int(row.RescheduleCount),
			CancelReason:    pgconv.StringPtrFromPgtype(row.CancelReason),
			CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
			UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
		})
	}
	return out, nil
}
