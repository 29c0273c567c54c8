package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"slotbook/internal/handler/middleware"
	"slotbook/internal/pkg/config"
	"slotbook/internal/pkg/errs"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// Applies pending migrations from ./migrations using the atlas CLI.
func main() {
	dir := flag.String("dir", "migrations", "migration directory")
	bin := flag.String("atlas", "atlas", "atlas binary")
	dryRun := flag.Bool("dry-run", false, "print pending migrations without applying")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := migrate(ctx, logger, cfg.DB, *dir, *bin, *dryRun); err != nil {
		logger.Error("Migration failed", "error", err.Error())
		os.Exit(1)
	}
}

func migrate(ctx context.Context, logger *slog.Logger, dbCfg config.DBConfig, dir, bin string, dryRun bool) error {
	wd, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(dir)))
	if err != nil {
		return errs.Wrap(err, "failed to prepare migration dir")
	}
	defer wd.Close()

	client, err := atlasexec.NewClient(wd.Path(), bin)
	if err != nil {
		return errs.Wrap(err, "failed to create atlas client")
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    dbCfg.BuildDSN(),
		DryRun: dryRun,
	})
	if err != nil {
		return errs.Wrap(err, "atlas migrate apply")
	}

	for _, f := range res.Applied {
		logger.Info("Applied migration", "file", f.Name, "dry_run", dryRun)
	}
	logger.Info("Migrations complete", "current", res.Current, "target", res.Target, "applied", len(res.Applied))
	return nil
}
