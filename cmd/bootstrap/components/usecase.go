package components

import (
	"slotbook/internal/pkg/actiontoken"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/config"
	"slotbook/internal/usecase"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"
	"slotbook/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewActionTokenService,
	func(s *actiontoken.Service) commands.ActionTokens { return s },
	func(s *actiontoken.Service) queries.TokenParser { return s },
	NewBookingSettings,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewHostUseCase,
		commands.NewBookingUseCase,
		commands.NewCalendarUseCase,
		NewReminderUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewHostQueries,
		queries.NewAvailabilityQueries,
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewActionTokenService(cfg config.Config, clk clock.Clock) *actiontoken.Service {
	return actiontoken.NewService(cfg.ActionToken.Secret, clk)
}

func NewBookingSettings(cfg config.Config) commands.BookingSettings {
	return commands.BookingSettings{
		PublicBaseURL:       cfg.Server.PublicBaseURL,
		CancelTTL:           cfg.ActionToken.CancelTTL,
		RescheduleTTL:       cfg.ActionToken.RescheduleTTL,
		BusyCheckFailClosed: cfg.Booking.BusyCheckFailClosed,
	}
}

func NewReminderUseCase(
	cfg config.Config,
	uow shared.UnitOfWork,
	notifier shared.NotificationSender,
	publisher shared.EventPublisher,
	clk clock.Clock,
) commands.ReminderCommands {
	return commands.NewReminderUseCase(uow, notifier, publisher, cfg.Reminder.BatchSize, clk)
}
