package repository

import (
	"context"

	"slotbook/internal/domain/host"
	"slotbook/internal/infra"
	"slotbook/internal/infra/db"
	"slotbook/internal/infra/repository/converter"
	"slotbook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	insertHostSQL = `
INSERT INTO hosts (
	id, handle, display_name, email, time_zone, duration_min, buffer_min,
	min_notice_min, calendar_ids, weekly_hours, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	updateHostSQL = `
UPDATE hosts SET
	display_name = $2,
	email = $3,
	time_zone = $4,
	duration_min = $5,
	buffer_min = $6,
	min_notice_min = $7,
	calendar_ids = $8,
	weekly_hours = $9,
	updated_at = $10
WHERE id = $1`

	selectHostSQL = `SELECT ` + converter.HostColumns + ` FROM hosts h`
)

type HostRepository struct {
	db db.DBTX
}

func NewHostRepository(dbtx db.DBTX) *HostRepository {
	return &HostRepository{db: dbtx}
}

func (r *HostRepository) Create(ctx context.Context, h *host.Host) error {
	hours, err := converter.WeeklyHoursToJSON(h.WeeklyHours())
	if err != nil {
		return infra.WrapRepoErr("failed to encode host", err, infra.KindDBFailure)
	}
	p := h.Policy()
	_, err = r.db.Exec(ctx, insertHostSQL,
		h.ID(), h.Handle().String(), h.DisplayName(), h.Email(),
		p.TimeZone(), int32(p.DurationMin()), int32(p.BufferMin()), int32(p.MinNoticeMin()),
		p.CalendarIDs(), hours,
		pgconv.TimeToPgtype(h.CreatedAt()), pgconv.TimeToPgtype(h.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create host", err)
	}
	return nil
}

func (r *HostRepository) Update(ctx context.Context, h *host.Host) error {
	hours, err := converter.WeeklyHoursToJSON(h.WeeklyHours())
	if err != nil {
		return infra.WrapRepoErr("failed to encode host", err, infra.KindDBFailure)
	}
	p := h.Policy()
	tag, err := r.db.Exec(ctx, updateHostSQL,
		h.ID(), h.DisplayName(), h.Email(),
		p.TimeZone(), int32(p.DurationMin()), int32(p.BufferMin()), int32(p.MinNoticeMin()),
		p.CalendarIDs(), hours,
		pgconv.TimeToPgtype(h.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update host", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepositoryError(infra.KindNotFound, "host not found")
	}
	return nil
}

func (r *HostRepository) FindByID(ctx context.Context, id uuid.UUID) (*host.Host, error) {
	return r.findOne(ctx, selectHostSQL+` WHERE h.id = $1`, id)
}

func (r *HostRepository) FindByHandle(ctx context.Context, handle string) (*host.Host, error) {
	return r.findOne(ctx, selectHostSQL+` WHERE h.handle = $1`, handle)
}

func (r *HostRepository) findOne(ctx context.Context, query string, args ...any) (*host.Host, error) {
	var row converter.HostRow
	if err := r.db.QueryRow(ctx, query, args...).Scan(row.Targets()...); err != nil {
		return nil, infra.WrapRepoErr("failed to get host", err)
	}
	h, err := converter.HostFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert host", err, infra.KindDBFailure)
	}
	return h, nil
}
