package queries

import (
	"context"
	"time"

	"slotbook/internal/infra"
	"slotbook/internal/pkg/actiontoken"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

const maxListRange = 93 * 24 * time.Hour

var (
	ErrInvalidRange   = errs.Mark(errs.New("range must satisfy from < to and span at most 93 days"), errs.ErrValidation)
	ErrLinkNotFound   = errs.Mark(errs.New("no booking is linked to this token"), errs.ErrNotFound)
	ErrGuestForbidden = errs.Mark(errs.New("token does not belong to this booking's guest"), errs.ErrForbidden)
)

type BookingReadStore interface {
	FindByHostFirstPage(ctx context.Context, hostID uuid.UUID, from, to time.Time, limit int32) ([]*BookingView, error)
	FindByHostKeyset(ctx context.Context, hostID uuid.UUID, from, to, afterStart time.Time, afterID uuid.UUID, limit int32) ([]*BookingView, error)
}

// TokenParser validates signature and expiry without pinning a purpose.
type TokenParser interface {
	Parse(token string) (*actiontoken.Claims, error)
}

type BookingQueries interface {
	ListForHost(ctx context.Context, hostID uuid.UUID, from, to time.Time, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error)
	GetForGuest(ctx context.Context, token string) (*GuestBookingView, error)
}

type bookingQueriesImpl struct {
	store  BookingReadStore
	repos  shared.Repositories
	tokens TokenParser
}

func NewBookingQueries(store BookingReadStore, repos shared.Repositories, tokens TokenParser) BookingQueries {
	return &bookingQueriesImpl{store: store, repos: repos, tokens: tokens}
}

func (q *bookingQueriesImpl) ListForHost(ctx context.Context, hostID uuid.UUID, from, to time.Time, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	if !from.Before(to) || to.Sub(from) > maxListRange {
		return nil, nil, ErrInvalidRange
	}

	limit = ValidateLimit(limit)
	var rows []*BookingView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.FindByHostFirstPage(ctx, hostID, from, to, int32(limit+1))
	} else {
		lastStart, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.store.FindByHostKeyset(ctx, hostID, from, to, lastStart, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.Start, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

// GetForGuest resolves a booking through the nonce linkage of a still valid
// action token. Tokens retired by a reschedule no longer resolve.
func (q *bookingQueriesImpl) GetForGuest(ctx context.Context, token string) (*GuestBookingView, error) {
	claims, err := q.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	subject, err := claims.SubjectID()
	if err != nil {
		return nil, err
	}

	b, err := q.repos.Bookings().FindByTokenNonce(ctx, claims.Nonce())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	if b.ID() != subject {
		return nil, ErrLinkNotFound
	}
	if !b.MatchesGuestEmail(claims.Email) {
		return nil, ErrGuestForbidden
	}

	h, err := q.repos.Hosts().FindByID(ctx, b.HostID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrHostNotFound
		}
		return nil, err
	}

	return &GuestBookingView{
		Booking:         NewBookingView(b),
		HostDisplayName: h.DisplayName(),
		HostTimeZone:    h.Policy().TimeZone(),
		Purpose:         string(claims.Purpose),
	}, nil
}
