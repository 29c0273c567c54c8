package commands

import (
	"context"
	"log/slog"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/host"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/actiontoken"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingInput struct {
	Handle     string
	Start      time.Time
	End        time.Time
	GuestName  string
	GuestEmail string
}

type CancelBookingInput struct {
	BookingID uuid.UUID
	Token     string
	Reason    string
}

type RescheduleBookingInput struct {
	BookingID uuid.UUID
	Token     string
	Start     time.Time
	End       time.Time
}

type IssuedLinks struct {
	Cancel     actiontoken.Issued
	Reschedule actiontoken.Issued
}

// BookingResult carries the committed booking. Effects lists side effects
// that failed after commit; the booking itself stands regardless.
type BookingResult struct {
	Booking *booking.Booking
	Links   *IssuedLinks
	Effects EffectReport
}

type BookingCommands interface {
	Create(ctx context.Context, in CreateBookingInput) (*BookingResult, error)
	Cancel(ctx context.Context, in CancelBookingInput) (*BookingResult, error)
	Reschedule(ctx context.Context, in RescheduleBookingInput) (*BookingResult, error)
	Confirm(ctx context.Context, hostID, bookingID uuid.UUID) (*BookingResult, error)
}

type bookingUseCaseImpl struct {
	uow       shared.UnitOfWork
	calendar  shared.CalendarProvider
	notifier  shared.NotificationSender
	publisher shared.EventPublisher
	markers   shared.TokenMarkerStore
	tokens    ActionTokens
	settings  BookingSettings
	clock     clock.Clock
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	calendar shared.CalendarProvider,
	notifier shared.NotificationSender,
	publisher shared.EventPublisher,
	markers shared.TokenMarkerStore,
	tokens ActionTokens,
	settings BookingSettings,
	clk clock.Clock,
) BookingCommands {
	if settings.EffectTimeout <= 0 {
		settings.EffectTimeout = 15 * time.Second
	}
	return &bookingUseCaseImpl{
		uow:       uow,
		calendar:  calendar,
		notifier:  notifier,
		publisher: publisher,
		markers:   markers,
		tokens:    tokens,
		settings:  settings,
		clock:     clk,
	}
}

func (uc *bookingUseCaseImpl) Create(ctx context.Context, in CreateBookingInput) (*BookingResult, error) {
	guest, err := booking.NewGuest(in.GuestName, in.GuestEmail)
	if err != nil {
		return nil, err
	}
	slot, err := booking.NewTimeSlot(in.Start, in.End)
	if err != nil {
		return nil, err
	}
	h, err := uc.loadHostByHandle(ctx, in.Handle)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if err := uc.checkAvailable(ctx, h, slot, nil, now); err != nil {
		return nil, err
	}

	b := booking.NewBooking(h.ID(), guest, slot, h.Policy().PrimaryCalendarID(), now)
	links, err := uc.issueLinks(b)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Create(ctx, b)
	})
	if err != nil {
		return nil, mapWriteErr(err)
	}

	slog.InfoContext(ctx, "booking created",
		slog.String("booking_id", b.ID().String()),
		slog.String("host_id", h.ID().String()),
		slog.Time("start", slot.Start()),
	)

	report := uc.runEffects(ctx, b.ID(),
		effect{name: effectCalendar, run: func(ctx context.Context) error { return uc.mirrorEvent(ctx, h, b) }},
		effect{name: effectNotifyGuest, run: func(ctx context.Context) error {
			return uc.notifier.Send(ctx, guestConfirmationMessage(h, b, uc.manageLinks(links), now))
		}},
		effect{name: effectNotifyHost, run: func(ctx context.Context) error {
			return uc.notifier.Send(ctx, hostNewBookingMessage(h, b, now))
		}},
		effect{name: effectPublish, run: func(ctx context.Context) error {
			return uc.publisher.Publish(ctx, newBookingEvent(shared.EventBookingCreated, b, uc.clock.Now()))
		}},
	)
	return &BookingResult{Booking: b, Links: links, Effects: report}, nil
}

func (uc *bookingUseCaseImpl) Cancel(ctx context.Context, in CancelBookingInput) (*BookingResult, error) {
	claims, err := uc.verifyFor(in.Token, actiontoken.PurposeCancel, in.BookingID)
	if err != nil {
		return nil, err
	}
	reason, err := booking.NewCancelReason(in.Reason)
	if err != nil {
		return nil, err
	}

	b, err := uc.loadBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	key, err := uc.guard(ctx, b, claims)
	if err != nil {
		return nil, err
	}
	if err := uc.consume(ctx, key); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cur, err := tx.Bookings().FindByIDForUpdate(ctx, b.ID())
		if err != nil {
			return err
		}
		if err := cur.Cancel(reason, now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, cur); err != nil {
			return err
		}
		b = cur
		return nil
	})
	if err != nil {
		uc.releaseMarker(ctx, key)
		return nil, mapWriteErr(err)
	}

	slog.InfoContext(ctx, "booking canceled", slog.String("booking_id", b.ID().String()))

	h, err := uc.uow.Hosts().FindByID(ctx, b.HostID())
	if err != nil {
		// committed already; effects that need the host are skipped
		slog.WarnContext(ctx, "host lookup failed after cancel", slog.String("booking_id", b.ID().String()), slog.String("error", err.Error()))
		report := uc.runEffects(ctx, b.ID(), uc.publishEffect(shared.EventBookingCanceled, b))
		report.Degraded = append(report.Degraded, effectCalendar, effectNotifyGuest, effectNotifyHost)
		return &BookingResult{Booking: b, Effects: report}, nil
	}

	report := uc.runEffects(ctx, b.ID(),
		effect{name: effectCalendar, run: func(ctx context.Context) error { return uc.removeEvent(ctx, b) }},
		effect{name: effectNotifyGuest, run: func(ctx context.Context) error {
			return uc.notifier.Send(ctx, guestCancellationMessage(h, b, now))
		}},
		effect{name: effectNotifyHost, run: func(ctx context.Context) error {
			return uc.notifier.Send(ctx, hostCancellationMessage(h, b, now))
		}},
		uc.publishEffect(shared.EventBookingCanceled, b),
	)
	return &BookingResult{Booking: b, Effects: report}, nil
}

func (uc *bookingUseCaseImpl) Reschedule(ctx context.Context, in RescheduleBookingInput) (*BookingResult, error) {
	claims, err := uc.verifyFor(in.Token, actiontoken.PurposeReschedule, in.BookingID)
	if err != nil {
		return nil, err
	}
	slot, err := booking.NewTimeSlot(in.Start, in.End)
	if err != nil {
		return nil, err
	}

	b, err := uc.loadBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	key, err := uc.guard(ctx, b, claims)
	if err != nil {
		return nil, err
	}
	if b.TimeSlot().Equal(slot) {
		return nil, booking.ErrSameSlot
	}
	h, err := uc.uow.Hosts().FindByID(ctx, b.HostID())
	if err != nil {
		return nil, mapReadErr(err, ErrHostNotFound)
	}
	now := uc.clock.Now()
	if err := uc.checkAvailable(ctx, h, slot, b, now); err != nil {
		return nil, err
	}
	if err := uc.consume(ctx, key); err != nil {
		return nil, err
	}

	var links *IssuedLinks
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cur, err := tx.Bookings().FindByIDForUpdate(ctx, b.ID())
		if err != nil {
			return err
		}
		if err := cur.Reschedule(slot, now); err != nil {
			return err
		}
		issued, err := uc.issueLinks(cur)
		if err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, cur); err != nil {
			return err
		}
		b, links = cur, issued
		return nil
	})
	if err != nil {
		uc.releaseMarker(ctx, key)
		return nil, mapWriteErr(err)
	}

	slog.InfoContext(ctx, "booking rescheduled",
		slog.String("booking_id", b.ID().String()),
		slog.Time("start", slot.Start()),
		slog.Int("reschedule_count", b.RescheduleCount()),
	)

	report := uc.runEffects(ctx, b.ID(),
		effect{name: effectCalendar, run: func(ctx context.Context) error { return uc.mirrorEvent(ctx, h, b) }},
		effect{name: effectNotifyGuest, run: func(ctx context.Context) error {
			return uc.notifier.Send(ctx, guestRescheduleMessage(h, b, uc.manageLinks(links), now))
		}},
		effect{name: effectNotifyHost, run: func(ctx context.Context) error {
			return uc.notifier.Send(ctx, hostRescheduleMessage(h, b, now))
		}},
		uc.publishEffect(shared.EventBookingRescheduled, b),
	)
	return &BookingResult{Booking: b, Links: links, Effects: report}, nil
}

func (uc *bookingUseCaseImpl) Confirm(ctx context.Context, hostID, bookingID uuid.UUID) (*BookingResult, error) {
	var b *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cur, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if !cur.OwnedBy(hostID) {
			return ErrNotBookingOwner
		}
		if err := cur.Confirm(uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, cur); err != nil {
			return err
		}
		b = cur
		return nil
	})
	if err != nil {
		return nil, mapWriteErr(err)
	}

	report := uc.runEffects(ctx, b.ID(), uc.publishEffect(shared.EventBookingConfirmed, b))
	return &BookingResult{Booking: b, Effects: report}, nil
}

func (uc *bookingUseCaseImpl) loadHostByHandle(ctx context.Context, raw string) (*host.Host, error) {
	handle, err := host.NewHandle(raw)
	if err != nil {
		return nil, ErrHostNotFound
	}
	h, err := uc.uow.Hosts().FindByHandle(ctx, handle.String())
	if err != nil {
		return nil, mapReadErr(err, ErrHostNotFound)
	}
	return h, nil
}

func (uc *bookingUseCaseImpl) loadBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := uc.uow.Bookings().FindByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err, ErrBookingNotFound)
	}
	return b, nil
}

// verifyFor checks signature, expiry and purpose, then binds the token to
// the booking addressed by the request.
func (uc *bookingUseCaseImpl) verifyFor(token string, purpose actiontoken.Purpose, bookingID uuid.UUID) (*actiontoken.Claims, error) {
	claims, err := uc.tokens.Verify(token, purpose)
	if err != nil {
		return nil, err
	}
	subject, err := claims.SubjectID()
	if err != nil {
		return nil, err
	}
	if subject != bookingID {
		return nil, ErrTokenSubject
	}
	return claims, nil
}

// guard runs the ownership, replay and state checks in that order.
func (uc *bookingUseCaseImpl) guard(ctx context.Context, b *booking.Booking, claims *actiontoken.Claims) (shared.MarkerKey, error) {
	key := shared.MarkerKey{SubjectID: b.ID(), Purpose: string(claims.Purpose), Nonce: claims.Nonce()}

	if !b.MatchesGuestEmail(claims.Email) {
		return key, ErrGuestMismatch
	}
	used, err := uc.markers.IsConsumed(ctx, key)
	if err != nil {
		return key, errs.Mark(errs.Wrap(err, "check token marker"), errs.ErrDatabaseOperation)
	}
	if used || !b.Tokens().Has(claims.Nonce()) {
		return key, ErrTokenUsed
	}
	if b.IsCanceled() {
		return key, booking.ErrAlreadyCanceled
	}
	return key, nil
}

// consume claims the marker atomically; losing a concurrent race reads as a
// used token. The caller releases the marker if its transaction fails.
func (uc *bookingUseCaseImpl) consume(ctx context.Context, key shared.MarkerKey) error {
	ok, err := uc.markers.Consume(ctx, key)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "consume token marker"), errs.ErrDatabaseOperation)
	}
	if !ok {
		return ErrTokenUsed
	}
	return nil
}

func (uc *bookingUseCaseImpl) releaseMarker(ctx context.Context, key shared.MarkerKey) {
	if err := uc.markers.Release(context.WithoutCancel(ctx), key); err != nil {
		slog.ErrorContext(ctx, "failed to release token marker",
			slog.String("marker", key.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (uc *bookingUseCaseImpl) issueLinks(b *booking.Booking) (*IssuedLinks, error) {
	extra := actiontoken.Extra{Email: b.Guest().Email()}
	cancel, err := uc.tokens.Sign(b.ID(), actiontoken.PurposeCancel, uc.settings.CancelTTL, extra)
	if err != nil {
		return nil, errs.Wrap(err, "sign cancel token")
	}
	reschedule, err := uc.tokens.Sign(b.ID(), actiontoken.PurposeReschedule, uc.settings.RescheduleTTL, extra)
	if err != nil {
		return nil, errs.Wrap(err, "sign reschedule token")
	}
	b.LinkTokens(booking.TokenLinks{CancelNonce: cancel.Nonce, RescheduleNonce: reschedule.Nonce})
	return &IssuedLinks{Cancel: cancel, Reschedule: reschedule}, nil
}

func (uc *bookingUseCaseImpl) publishEffect(typ shared.BookingEventType, b *booking.Booking) effect {
	return effect{name: effectPublish, run: func(ctx context.Context) error {
		return uc.publisher.Publish(ctx, newBookingEvent(typ, b, uc.clock.Now()))
	}}
}

func mapReadErr(err error, notFound error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return notFound
	}
	return errs.Mark(err, errs.ErrDatabaseOperation)
}

// mapWriteErr keeps domain and usecase sentinels intact and classifies
// repository failures.
func mapWriteErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return ErrBookingNotFound
	case infra.IsKind(err, infra.KindConflict):
		return ErrSlotUnavailable
	case infra.IsKind(err, infra.KindDBFailure),
		infra.IsKind(err, infra.KindDuplicateKey),
		infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Mark(err, errs.ErrDatabaseOperation)
	}
	return err
}

func newBookingEvent(typ shared.BookingEventType, b *booking.Booking, now time.Time) shared.BookingEvent {
	return shared.BookingEvent{
		ID:              uuid.New(),
		Type:            typ,
		BookingID:       b.ID(),
		HostID:          b.HostID(),
		Status:          b.Status().String(),
		StartTime:       b.TimeSlot().Start(),
		EndTime:         b.TimeSlot().End(),
		RescheduleCount: b.RescheduleCount(),
		OccurredAt:      now.UTC(),
	}
}
