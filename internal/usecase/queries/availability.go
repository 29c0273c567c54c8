package queries

import (
	"context"
	"log/slog"

	"slotbook/internal/domain/availability"
	"slotbook/internal/domain/host"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/pkg/wallclock"
	"slotbook/internal/usecase/shared"
)

var ErrHostNotFound = errs.Mark(errs.New("host not found"), errs.ErrNotFound)

type AvailabilityQueries interface {
	// ListSlots returns the free slots of a host for one local date.
	ListSlots(ctx context.Context, handle, date string) (*SlotsView, error)
}

type availabilityQueriesImpl struct {
	repos    shared.Repositories
	calendar shared.CalendarProvider
	clock    clock.Clock
}

func NewAvailabilityQueries(repos shared.Repositories, calendar shared.CalendarProvider, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{repos: repos, calendar: calendar, clock: clk}
}

func (q *availabilityQueriesImpl) ListSlots(ctx context.Context, rawHandle, rawDate string) (*SlotsView, error) {
	date, err := wallclock.ParseDate(rawDate)
	if err != nil {
		return nil, err
	}
	handle, err := host.NewHandle(rawHandle)
	if err != nil {
		return nil, ErrHostNotFound
	}
	h, err := q.repos.Hosts().FindByHandle(ctx, handle.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrHostNotFound
		}
		return nil, err
	}

	policy := h.Policy()
	loc := policy.Location()
	view := &SlotsView{
		Date:            date.String(),
		TimeZone:        policy.TimeZone(),
		DurationMin:     policy.DurationMin(),
		Slots:           []SlotView{},
		CalendarChecked: true,
	}

	candidates := availability.CandidateSlots(date, policy, h.WeeklyHours(), q.clock.Now())
	if len(candidates) == 0 {
		return view, nil
	}

	// busy lookups cover every candidate's buffered window
	from := candidates[0].WindowStartUTC
	to := candidates[len(candidates)-1].WindowEndUTC

	busy, err := q.calendar.ListBusy(ctx, h.ID(), policy.CalendarIDs(), from, to)
	if err != nil {
		if !errs.Is(err, shared.ErrCalendarNotConnected) {
			slog.WarnContext(ctx, "calendar busy lookup failed",
				slog.String("host_id", h.ID().String()),
				slog.String("error", err.Error()),
			)
			view.CalendarChecked = false
		}
		busy = nil
	}

	booked, err := q.repos.Bookings().ListActiveOverlapping(ctx, h.ID(), from, to)
	if err != nil {
		return nil, err
	}
	for _, b := range booked {
		busy = append(busy, availability.BusyInterval{Start: b.TimeSlot().Start(), End: b.TimeSlot().End()})
	}

	for _, s := range availability.FilterBusy(candidates, busy) {
		view.Slots = append(view.Slots, NewSlotView(s, loc))
	}
	return view, nil
}
