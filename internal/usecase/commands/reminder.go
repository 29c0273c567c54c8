package commands

import (
	"context"
	"log/slog"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/domain/host"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type DispatchResult struct {
	Sent   int
	Failed int
}

type ReminderCommands interface {
	// DispatchDue sends every due, unsent reminder of non-canceled bookings.
	// Each reminder is stamped sent only after its notification went out,
	// and the stamp is conditional, so overlapping runs send at most once
	// per successful stamp.
	DispatchDue(ctx context.Context) (DispatchResult, error)
}

type reminderUseCaseImpl struct {
	uow       shared.UnitOfWork
	notifier  shared.NotificationSender
	publisher shared.EventPublisher
	batchSize int
	clock     clock.Clock
}

func NewReminderUseCase(
	uow shared.UnitOfWork,
	notifier shared.NotificationSender,
	publisher shared.EventPublisher,
	batchSize int,
	clk clock.Clock,
) ReminderCommands {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &reminderUseCaseImpl{
		uow:       uow,
		notifier:  notifier,
		publisher: publisher,
		batchSize: batchSize,
		clock:     clk,
	}
}

// DispatchDue walks every due booking in pages of batchSize. Bookings whose
// sends keep failing stay pending but never block the pages after them.
func (uc *reminderUseCaseImpl) DispatchDue(ctx context.Context) (DispatchResult, error) {
	var result DispatchResult

	now := uc.clock.Now()
	hosts := make(map[uuid.UUID]*host.Host)
	var after *shared.DueCursor
	for {
		bookings, err := uc.uow.Bookings().ListWithDueReminders(ctx, now, after, uc.batchSize)
		if err != nil {
			return result, errs.Mark(errs.Wrap(err, "list due reminders"), errs.ErrDatabaseOperation)
		}
		if len(bookings) == 0 {
			return result, nil
		}
		next := shared.DueCursorOf(bookings[len(bookings)-1], now)

		for _, b := range bookings {
			if err := uc.dispatchBooking(ctx, b, now, hosts, &result); err != nil {
				return result, err
			}
		}
		if len(bookings) < uc.batchSize {
			return result, nil
		}
		after = &next
	}
}

func (uc *reminderUseCaseImpl) dispatchBooking(
	ctx context.Context,
	b *booking.Booking,
	now time.Time,
	hosts map[uuid.UUID]*host.Host,
	result *DispatchResult,
) error {
	h, ok := hosts[b.HostID()]
	if !ok {
		var err error
		h, err = uc.uow.Hosts().FindByID(ctx, b.HostID())
		if err != nil {
			slog.ErrorContext(ctx, "reminder host lookup failed",
				slog.String("booking_id", b.ID().String()),
				slog.String("error", err.Error()),
			)
			result.Failed += len(b.DueReminders(now))
			return nil
		}
		hosts[b.HostID()] = h
	}

	for _, r := range b.DueReminders(now) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := uc.notifier.Send(ctx, reminderMessage(h, b, r)); err != nil {
			slog.WarnContext(ctx, "reminder send failed",
				slog.String("booking_id", b.ID().String()),
				slog.String("reminder_type", r.Type().String()),
				slog.String("error", err.Error()),
			)
			result.Failed++
			continue
		}

		sentAt := uc.clock.Now()
		stamped, err := uc.uow.Bookings().MarkReminderSent(ctx, b.ID(), r.ID(), sentAt)
		if err != nil {
			slog.ErrorContext(ctx, "reminder stamp failed",
				slog.String("booking_id", b.ID().String()),
				slog.String("reminder_id", r.ID().String()),
				slog.String("error", err.Error()),
			)
			result.Failed++
			continue
		}
		if !stamped {
			continue
		}
		b.MarkReminderSent(r.ID(), sentAt)
		result.Sent++

		ev := newBookingEvent(shared.EventReminderSent, b, sentAt)
		if err := uc.publisher.Publish(ctx, ev); err != nil {
			slog.WarnContext(ctx, "reminder event publish failed",
				slog.String("booking_id", b.ID().String()),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}
