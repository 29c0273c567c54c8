package queries

import (
	"context"

	"slotbook/internal/domain/host"
	"slotbook/internal/infra"
)

type HostReadStore interface {
	FindProfileByHandle(ctx context.Context, handle string) (*HostProfileView, error)
}

type HostQueries interface {
	GetProfile(ctx context.Context, handle string) (*HostProfileView, error)
}

type hostQueriesImpl struct {
	store HostReadStore
}

func NewHostQueries(store HostReadStore) HostQueries {
	return &hostQueriesImpl{store: store}
}

func (q *hostQueriesImpl) GetProfile(ctx context.Context, raw string) (*HostProfileView, error) {
	handle, err := host.NewHandle(raw)
	if err != nil {
		return nil, ErrHostNotFound
	}
	v, err := q.store.FindProfileByHandle(ctx, handle.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrHostNotFound
		}
		return nil, err
	}
	return v, nil
}
