//go:build unit || e2e

// Package fakes holds in-memory collaborators for usecase and worker tests.
package fakes

import (
	"context"
	"sort"
	"sync"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/host"
	"slotbook/internal/infra"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

func notFound(msg string) error {
	return infra.NewRepositoryError(infra.KindNotFound, msg)
}

// Store is an in-memory UnitOfWork. Entities are copied on the way in and
// out so a failed transaction leaves no trace.
type Store struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*booking.Booking
	hosts    map[uuid.UUID]*host.Host

	// Fail makes the named operation return the error once.
	Fail map[string]error
}

func NewStore() *Store {
	return &Store{
		bookings: make(map[uuid.UUID]*booking.Booking),
		hosts:    make(map[uuid.UUID]*host.Host),
		Fail:     make(map[string]error),
	}
}

func (s *Store) failure(op string) error {
	err, ok := s.Fail[op]
	if ok {
		delete(s.Fail, op)
	}
	return err
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := s.failure("within"); err != nil {
		return err
	}
	return fn(ctx, s)
}

func (s *Store) Bookings() shared.BookingRepository { return (*bookingRepo)(s) }
func (s *Store) Hosts() shared.HostRepository       { return (*hostRepo)(s) }

func (s *Store) PutHost(h *host.Host) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hosts[h.ID()] = cloneHost(h)
}

func (s *Store) PutBooking(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID()] = cloneBooking(b)
}

// Booking returns a copy of the stored booking, or nil.
func (s *Store) Booking(id uuid.UUID) *booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil
	}
	return cloneBooking(b)
}

func (s *Store) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

type bookingRepo Store

func (r *bookingRepo) store() *Store { return (*Store)(r) }

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("booking.create"); err != nil {
		return err
	}
	s.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r *bookingRepo) Update(_ context.Context, b *booking.Booking) error {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("booking.update"); err != nil {
		return err
	}
	if _, ok := s.bookings[b.ID()]; !ok {
		return notFound("booking not found")
	}
	s.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r *bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	return cloneBooking(b), nil
}

func (r *bookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r *bookingRepo) FindByTokenNonce(_ context.Context, nonce string) (*booking.Booking, error) {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.Tokens().Has(nonce) {
			return cloneBooking(b), nil
		}
	}
	return nil, notFound("booking not found")
}

func (r *bookingRepo) ListActiveOverlapping(_ context.Context, hostID uuid.UUID, from, to time.Time) ([]*booking.Booking, error) {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("booking.list_active"); err != nil {
		return nil, err
	}
	var out []*booking.Booking
	for _, b := range s.bookings {
		ts := b.TimeSlot()
		if b.HostID() != hostID || b.IsCanceled() {
			continue
		}
		if ts.Start().Before(to) && from.Before(ts.End()) {
			out = append(out, cloneBooking(b))
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *bookingRepo) ListByHost(_ context.Context, hostID uuid.UUID, from, to time.Time) ([]*booking.Booking, error) {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*booking.Booking
	for _, b := range s.bookings {
		ts := b.TimeSlot()
		if b.HostID() == hostID && ts.Start().Before(to) && from.Before(ts.End()) {
			out = append(out, cloneBooking(b))
		}
	}
	sortByStart(out)
	return out, nil
}

// ListWithDueReminders mirrors the SQL: canceled bookings are dropped before
// ordering by (earliest due, id), then the cursor and limit apply.
func (r *bookingRepo) ListWithDueReminders(_ context.Context, now time.Time, after *shared.DueCursor, limit int) ([]*booking.Booking, error) {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()
	type entry struct {
		b   *booking.Booking
		pos shared.DueCursor
	}
	var due []entry
	for _, b := range s.bookings {
		if len(b.DueReminders(now)) == 0 {
			continue
		}
		pos := shared.DueCursorOf(b, now)
		if after != nil && !after.Before(pos.FirstDue, pos.BookingID) {
			continue
		}
		due = append(due, entry{b: b, pos: pos})
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].pos.Before(due[j].pos.FirstDue, due[j].pos.BookingID)
	})
	if len(due) > limit {
		due = due[:limit]
	}
	out := make([]*booking.Booking, 0, len(due))
	for _, e := range due {
		out = append(out, cloneBooking(e.b))
	}
	return out, nil
}

func (r *bookingRepo) MarkReminderSent(_ context.Context, bookingID, reminderID uuid.UUID, sentAt time.Time) (bool, error) {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("booking.mark_reminder"); err != nil {
		return false, err
	}
	b, ok := s.bookings[bookingID]
	if !ok {
		return false, nil
	}
	for _, rem := range b.Reminders() {
		if rem.ID() == reminderID && !rem.IsSent() {
			b.MarkReminderSent(reminderID, sentAt)
			return true, nil
		}
	}
	return false, nil
}

func (r *bookingRepo) SetExternalEventID(_ context.Context, bookingID uuid.UUID, eventID *string) error {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[bookingID]
	if !ok {
		return notFound("booking not found")
	}
	if eventID == nil {
		b.SetExternalEventID("")
	} else {
		b.SetExternalEventID(*eventID)
	}
	return nil
}

type hostRepo Store

func (r *hostRepo) store() *Store { return (*Store)(r) }

func (r *hostRepo) Create(_ context.Context, h *host.Host) error {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.hosts {
		if other.Handle() == h.Handle() {
			return infra.NewRepositoryError(infra.KindDuplicateKey, "handle taken")
		}
	}
	s.hosts[h.ID()] = cloneHost(h)
	return nil
}

func (r *hostRepo) Update(_ context.Context, h *host.Host) error {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hosts[h.ID()]; !ok {
		return notFound("host not found")
	}
	s.hosts[h.ID()] = cloneHost(h)
	return nil
}

func (r *hostRepo) FindByID(_ context.Context, id uuid.UUID) (*host.Host, error) {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hosts[id]
	if !ok {
		return nil, notFound("host not found")
	}
	return cloneHost(h), nil
}

func (r *hostRepo) FindByHandle(_ context.Context, handle string) (*host.Host, error) {
	s := r.store()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.hosts {
		if h.Handle().String() == handle {
			return cloneHost(h), nil
		}
	}
	return nil, notFound("host not found")
}

func sortByStart(bs []*booking.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		return bs[i].TimeSlot().Start().Before(bs[j].TimeSlot().Start())
	})
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	c, err := booking.ReconstructBooking(
		b.ID(), b.HostID(), b.Guest(), b.TimeSlot(), b.Status(), b.RescheduleCount(),
		b.Reminders(), b.Tokens(), b.CalendarID(), b.ExternalEventID(), b.CancelReason(),
		b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		panic(err)
	}
	return c
}

func cloneHost(h *host.Host) *host.Host {
	return host.ReconstructHost(h.ID(), h.Handle(), h.DisplayName(), h.Email(), h.Policy(), h.WeeklyHours(), h.CreatedAt(), h.UpdatedAt())
}
