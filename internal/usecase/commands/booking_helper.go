package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"slotbook/internal/domain/availability"
	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/host"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/pkg/wallclock"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	effectCalendar    = "calendar"
	effectNotifyGuest = "notify_guest"
	effectNotifyHost  = "notify_host"
	effectPublish     = "publish"
)

// EffectReport names the post-commit side effects that failed.
type EffectReport struct {
	Degraded []string
}

func (r EffectReport) OK() bool {
	return len(r.Degraded) == 0
}

type effect struct {
	name string
	run  func(ctx context.Context) error
}

// runEffects executes each effect on a context detached from the request so
// a client disconnect does not abort work for an already committed booking.
func (uc *bookingUseCaseImpl) runEffects(ctx context.Context, bookingID uuid.UUID, effects ...effect) EffectReport {
	base := context.WithoutCancel(ctx)
	var report EffectReport
	for _, e := range effects {
		if err := uc.runIsolated(base, e); err != nil {
			slog.WarnContext(ctx, "booking side effect failed",
				slog.String("effect", e.name),
				slog.String("booking_id", bookingID.String()),
				slog.String("error", err.Error()),
			)
			report.Degraded = append(report.Degraded, e.name)
		}
	}
	return report
}

func (uc *bookingUseCaseImpl) runIsolated(ctx context.Context, e effect) (err error) {
	ctx, cancel := context.WithTimeout(ctx, uc.settings.EffectTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = errs.Newf("panic in %s: %v", e.name, r)
		}
	}()
	return e.run(ctx)
}

// checkAvailable re-validates a requested slot at commit time: it must be one
// of the generated candidates for its local date, and its buffered window
// must be free in the external calendars and among the host's own active
// bookings. self, when set, is the booking being moved and is ignored.
func (uc *bookingUseCaseImpl) checkAvailable(ctx context.Context, h *host.Host, slot booking.TimeSlot, self *booking.Booking, now time.Time) error {
	policy := h.Policy()
	if slot.Duration() != policy.Duration() {
		return errs.Wrapf(ErrDurationMismatch, "want %d minutes", policy.DurationMin())
	}

	date := wallclock.DateOf(slot.Start(), policy.Location())
	candidates := availability.CandidateSlots(date, policy, h.WeeklyHours(), now)
	candidate, ok := availability.FindSlot(candidates, slot.Start(), slot.End())
	if !ok {
		return ErrSlotNotOffered
	}

	busy, err := uc.calendar.ListBusy(ctx, h.ID(), policy.CalendarIDs(), candidate.WindowStartUTC, candidate.WindowEndUTC)
	switch {
	case err == nil:
	case errs.Is(err, shared.ErrCalendarNotConnected):
		busy = nil
	case uc.settings.BusyCheckFailClosed:
		return errs.Mark(errs.Wrap(err, "list busy"), ErrCalendarUnavailable)
	default:
		slog.WarnContext(ctx, "calendar busy check failed, treating as free",
			slog.String("host_id", h.ID().String()),
			slog.String("error", err.Error()),
		)
		busy = nil
	}
	if self != nil {
		busy = withoutOwnEvent(busy, self)
	}
	if candidate.OverlapsAny(busy) {
		return ErrSlotUnavailable
	}

	existing, err := uc.uow.Bookings().ListActiveOverlapping(ctx, h.ID(), candidate.WindowStartUTC, candidate.WindowEndUTC)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperation)
	}
	for _, other := range existing {
		if self != nil && other.ID() == self.ID() {
			continue
		}
		return ErrSlotUnavailable
	}
	return nil
}

// withoutOwnEvent drops the single busy entry produced by the booking's own
// mirrored event: same calendar, exactly the current slot. Without a
// mirrored event nothing is dropped.
func withoutOwnEvent(busy []availability.BusyInterval, self *booking.Booking) []availability.BusyInterval {
	if self.ExternalEventID() == nil {
		return busy
	}
	slot := self.TimeSlot()
	out := busy[:0:0]
	dropped := false
	for _, b := range busy {
		if !dropped && b.CalendarID == self.CalendarID() &&
			b.Start.Equal(slot.Start()) && b.End.Equal(slot.End()) {
			dropped = true
			continue
		}
		out = append(out, b)
	}
	return out
}

// mirrorEvent writes the booking to the host's primary calendar, updating
// the existing event when one is already linked.
func (uc *bookingUseCaseImpl) mirrorEvent(ctx context.Context, h *host.Host, b *booking.Booking) error {
	ev := shared.CalendarEvent{
		Summary:     fmt.Sprintf("%s <> %s", b.Guest().Name(), h.DisplayName()),
		Description: "Booked via slotbook",
		Start:       b.TimeSlot().Start(),
		End:         b.TimeSlot().End(),
		TimeZone:    h.Policy().TimeZone(),
		Attendees:   []string{b.Guest().Email()},
	}

	if id := b.ExternalEventID(); id != nil {
		err := uc.calendar.UpdateEvent(ctx, h.ID(), b.CalendarID(), *id, ev)
		if errs.Is(err, shared.ErrCalendarNotConnected) {
			return nil
		}
		return err
	}

	eventID, err := uc.calendar.InsertEvent(ctx, h.ID(), b.CalendarID(), ev)
	if err != nil {
		if errs.Is(err, shared.ErrCalendarNotConnected) {
			return nil
		}
		return err
	}
	b.SetExternalEventID(eventID)
	return uc.uow.Bookings().SetExternalEventID(ctx, b.ID(), &eventID)
}

func (uc *bookingUseCaseImpl) removeEvent(ctx context.Context, b *booking.Booking) error {
	id := b.ExternalEventID()
	if id == nil {
		return nil
	}
	err := uc.calendar.DeleteEvent(ctx, b.HostID(), b.CalendarID(), *id)
	if errs.Is(err, shared.ErrCalendarNotConnected) {
		return nil
	}
	return err
}

type guestLinks struct {
	CancelURL     string
	RescheduleURL string
}

func (uc *bookingUseCaseImpl) manageLinks(links *IssuedLinks) guestLinks {
	base := strings.TrimRight(uc.settings.PublicBaseURL, "/")
	return guestLinks{
		CancelURL:     base + "/manage/cancel?token=" + url.QueryEscape(links.Cancel.Token),
		RescheduleURL: base + "/manage/reschedule?token=" + url.QueryEscape(links.Reschedule.Token),
	}
}
