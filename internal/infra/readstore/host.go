package readstore

import (
	"context"

	"slotbook/internal/infra"
	"slotbook/internal/infra/db"
	"slotbook/internal/usecase/queries"
)

const hostProfileByHandleSQL = `
SELECT id, handle, display_name, time_zone, duration_min
FROM hosts
WHERE handle = $1`

type HostReadStore struct {
	db db.DBTX
}

func NewHostReadStore(dbtx db.DBTX) *HostReadStore {
	return &HostReadStore{db: dbtx}
}

func (r *HostReadStore) FindProfileByHandle(ctx context.Context, handle string) (*queries.HostProfileView, error) {
	var (
		v        queries.HostProfileView
		duration int32
	)
	err := r.db.QueryRow(ctx, hostProfileByHandleSQL, handle).
		Scan(&v.ID, &v.Handle, &v.DisplayName, &v.TimeZone, &duration)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get host profile", err)
	}
	v.DurationMin = int(duration)
	return &v, nil
}
