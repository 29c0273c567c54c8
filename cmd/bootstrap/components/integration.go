package components

import (
	"context"
	"log/slog"

	"slotbook/internal/infra/calendar"
	"slotbook/internal/infra/events"
	"slotbook/internal/infra/notification"
	"slotbook/internal/infra/repository"
	"slotbook/internal/infra/tokenstore"
	"slotbook/internal/pkg/config"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const (
	markerBackendPostgres = "postgres"
	markerBackendRedis    = "redis"
)

var IntegrationModule = fx.Module("integration",
	fx.Provide(
		NewCalendar,
		NewNotificationSender,
		NewEventPublisher,
		NewTokenMarkerStore,
	),
)

// CalendarOut provides one adapter under both the provider and authorizer
// ports.
type CalendarOut struct {
	fx.Out

	Provider   shared.CalendarProvider
	Authorizer commands.CalendarAuthorizer
}

func NewCalendar(cfg config.Config, creds *repository.CalendarCredentialRepository, logger *slog.Logger) CalendarOut {
	if !cfg.Google.Enabled() {
		logger.Info("Google Calendar disabled")
		return CalendarOut{Provider: calendar.Disabled{}, Authorizer: calendar.Disabled{}}
	}
	g := calendar.NewGoogle(cfg.Google, creds)
	return CalendarOut{Provider: g, Authorizer: g}
}

func NewNotificationSender(cfg config.Config, logger *slog.Logger) shared.NotificationSender {
	if cfg.SMTP.Host == "" {
		logger.Info("SMTP disabled, notifications are logged only")
		return notification.LogSender{}
	}
	return notification.NewSMTPSender(cfg.SMTP)
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.EventPublisher {
	if len(events.SplitBrokers(cfg.Kafka.Brokers)) == 0 {
		logger.Info("Kafka disabled, booking events are logged only")
		return events.LogPublisher{}
	}

	p := events.NewKafkaPublisher(cfg.Kafka)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return p.Close()
		},
	})
	return p
}

func NewTokenMarkerStore(
	cfg config.Config,
	pg *repository.TokenMarkerRepository,
	rdb *redis.Client,
) (shared.TokenMarkerStore, error) {
	switch cfg.ActionToken.MarkerBackend {
	case "", markerBackendPostgres:
		return pg, nil
	case markerBackendRedis:
		if rdb == nil {
			return nil, errs.New("TOKEN_MARKER_BACKEND=redis requires REDIS_ADDR")
		}
		return tokenstore.NewRedisMarkerStore(rdb, cfg.ActionToken.MarkerTTL), nil
	default:
		return nil, errs.Newf("unknown TOKEN_MARKER_BACKEND %q", cfg.ActionToken.MarkerBackend)
	}
}
