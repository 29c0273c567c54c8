package components

import (
	"context"
	"log/slog"

	"slotbook/internal/pkg/config"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Invoke(StartReminderWorker),
)

func StartReminderWorker(lc fx.Lifecycle, cfg config.Config, reminders commands.ReminderCommands, logger *slog.Logger) {
	if !cfg.Reminder.Enabled {
		logger.Info("Reminder worker disabled")
		return
	}

	w := worker.NewReminderWorker(reminders, logger, cfg.Reminder.Interval)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			w.Start(ctx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return w.Stop(ctx)
		},
	})
}
