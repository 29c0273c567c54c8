package converter

import (
	"encoding/json"

	"slotbook/internal/domain/availability"
	"slotbook/internal/domain/host"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const HostColumns = `h.id, h.handle, h.display_name, h.email, h.time_zone, h.duration_min,
	h.buffer_min, h.min_notice_min, h.calendar_ids, h.weekly_hours, h.created_at, h.updated_at`

type HostRow struct {
	ID           uuid.UUID
	Handle       string
	DisplayName  string
	Email        string
	TimeZone     string
	DurationMin  int32
	BufferMin    int32
	MinNoticeMin int32
	CalendarIDs  []string
	WeeklyHours  []byte
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

func (r *HostRow) Targets() []any {
	return []any{
		&r.ID, &r.Handle, &r.DisplayName, &r.Email, &r.TimeZone, &r.DurationMin,
		&r.BufferMin, &r.MinNoticeMin, &r.CalendarIDs, &r.WeeklyHours, &r.CreatedAt, &r.UpdatedAt,
	}
}

func HostFromRow(row HostRow) (*host.Host, error) {
	handle, err := host.NewHandle(row.Handle)
	if err != nil {
		return nil, err
	}
	policy, err := availability.NewPolicy(
		row.TimeZone,
		int(row.DurationMin),
		int(row.BufferMin),
		int(row.MinNoticeMin),
		row.CalendarIDs,
	)
	if err != nil {
		return nil, err
	}

	var specs map[string][]availability.BlockSpec
	if len(row.WeeklyHours) > 0 {
		if err := json.Unmarshal(row.WeeklyHours, &specs); err != nil {
			return nil, errs.Wrap(err, "decode weekly hours")
		}
	}
	hours, err := availability.ParseWeeklyHours(specs)
	if err != nil {
		return nil, err
	}

	return host.ReconstructHost(
		row.ID,
		handle,
		row.DisplayName,
		row.Email,
		policy,
		hours,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func WeeklyHoursToJSON(hours availability.WeeklyHours) ([]byte, error) {
	b, err := json.Marshal(hours.Specs())
	if err != nil {
		return nil, errs.Wrap(err, "encode weekly hours")
	}
	return b, nil
}
