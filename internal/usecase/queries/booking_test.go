//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/pkg/actiontoken"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/usecase/queries"
	"slotbook/tests/common/builder"
	"slotbook/tests/common/fakes"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pagedStore struct {
	rows []*queries.BookingView
}

func (p *pagedStore) FindByHostFirstPage(_ context.Context, _ uuid.UUID, _, _ time.Time, limit int32) ([]*queries.BookingView, error) {
	return p.page(nil, uuid.Nil, limit), nil
}

func (p *pagedStore) FindByHostKeyset(_ context.Context, _ uuid.UUID, _, _, afterStart time.Time, afterID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	return p.page(&afterStart, afterID, limit), nil
}

func (p *pagedStore) page(afterStart *time.Time, afterID uuid.UUID, limit int32) []*queries.BookingView {
	var out []*queries.BookingView
	for _, r := range p.rows {
		if afterStart != nil && !r.Start.After(*afterStart) && !(r.Start.Equal(*afterStart) && r.ID.String() > afterID.String()) {
			continue
		}
		out = append(out, r)
		if len(out) == int(limit) {
			break
		}
	}
	return out
}

func TestListForHost(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	store := &pagedStore{}
	for i := 0; i < 5; i++ {
		store.rows = append(store.rows, &queries.BookingView{ID: uuid.New(), Start: base.Add(time.Duration(i) * time.Hour)})
	}
	q := queries.NewBookingQueries(store, fakes.NewStore(), nil)
	from, to := base.Add(-time.Hour), base.Add(24*time.Hour)

	page1, next, err := q.ListForHost(ctx, uuid.New(), from, to, nil, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.NotNil(t, next)

	page2, next, err := q.ListForHost(ctx, uuid.New(), from, to, next, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, store.rows[2].ID, page2[0].ID)

	page3, next, err := q.ListForHost(ctx, uuid.New(), from, to, next, 2)
	require.NoError(t, err)
	assert.Len(t, page3, 1)
	assert.Nil(t, next)

	_, _, err = q.ListForHost(ctx, uuid.New(), to, from, nil, 2)
	assert.ErrorIs(t, err, queries.ErrInvalidRange)
	_, _, err = q.ListForHost(ctx, uuid.New(), from, from.Add(100*24*time.Hour), nil, 2)
	assert.ErrorIs(t, err, queries.ErrInvalidRange)
	_, _, err = q.ListForHost(ctx, uuid.New(), from, to, &queries.Cursor{After: "garbage"}, 2)
	assert.ErrorIs(t, err, queries.ErrInvalidCursor)
}

func TestGetForGuest(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	tokens := actiontoken.NewService("test-action-secret", clk)

	h, err := builder.NewHostBuilder().BuildDomain()
	require.NoError(t, err)
	b, err := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) { bb.HostID = h.ID() }).BuildDomain()
	require.NoError(t, err)

	cancel, err := tokens.Sign(b.ID(), actiontoken.PurposeCancel, time.Hour, actiontoken.Extra{Email: b.Guest().Email()})
	require.NoError(t, err)
	stale, err := tokens.Sign(b.ID(), actiontoken.PurposeReschedule, time.Hour, actiontoken.Extra{Email: b.Guest().Email()})
	require.NoError(t, err)
	b.LinkTokens(booking.TokenLinks{CancelNonce: cancel.Nonce})

	store := fakes.NewStore()
	store.PutHost(h)
	store.PutBooking(b)
	q := queries.NewBookingQueries(&pagedStore{}, store, tokens)

	v, err := q.GetForGuest(ctx, cancel.Token)
	require.NoError(t, err)
	assert.Equal(t, b.ID(), v.Booking.ID)
	assert.Equal(t, "Ada Lovelace", v.HostDisplayName)
	assert.Equal(t, string(actiontoken.PurposeCancel), v.Purpose)
	assert.Len(t, v.Booking.Reminders, 2)

	_, err = q.GetForGuest(ctx, stale.Token)
	assert.ErrorIs(t, err, queries.ErrLinkNotFound)

	clk.Add(2 * time.Hour)
	_, err = q.GetForGuest(ctx, cancel.Token)
	assert.ErrorIs(t, err, actiontoken.ErrTokenExpired)
}
