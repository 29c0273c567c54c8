package bootstrap

import (
	"context"
	"log/slog"

	"slotbook/internal/pkg/config"
	"slotbook/internal/pkg/telemetry"

	"go.uber.org/fx"
)

var TelemetryModule = fx.Module("telemetry",
	fx.Invoke(SetupTelemetry),
)

func SetupTelemetry(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) error {
	shutdown, err := telemetry.Setup(context.Background(), cfg.OTel)
	if err != nil {
		return err
	}
	if cfg.OTel.Enabled {
		logger.Info("Tracing enabled", "endpoint", cfg.OTel.OTLPEndpoint, "service", cfg.OTel.ServiceName)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return shutdown(ctx)
		},
	})
	return nil
}
