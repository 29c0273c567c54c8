package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"slotbook/internal/usecase/commands"
)

// ReminderWorker periodically dispatches due reminders until stopped.
type ReminderWorker struct {
	reminders commands.ReminderCommands
	logger    *slog.Logger
	interval  time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewReminderWorker(reminders commands.ReminderCommands, logger *slog.Logger, interval time.Duration) *ReminderWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReminderWorker{reminders: reminders, logger: logger, interval: interval}
}

// Start launches the loop in the background; it returns immediately.
func (w *ReminderWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(context.WithoutCancel(ctx))
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.Run(ctx)
	}()
	w.logger.Info("reminder worker started", "interval", w.interval.String())
}

// Stop cancels the loop and waits for an in-flight batch, bounded by ctx.
func (w *ReminderWorker) Stop(ctx context.Context) error {
	if w.cancel == nil {
		return nil
	}
	w.cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		w.logger.Info("reminder worker stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *ReminderWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *ReminderWorker) tick(ctx context.Context) {
	res, err := w.reminders.DispatchDue(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Error("reminder dispatch failed", "error", err.Error())
		return
	}
	if res.Sent > 0 || res.Failed > 0 {
		w.logger.Info("reminders dispatched", "sent", res.Sent, "failed", res.Failed)
	}
}
