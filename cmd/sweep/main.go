// Command sweep runs the appointment completion sweep once and exits.
// It is meant to be scheduled by cron or a job runner.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"ekicare/cmd/bootstrap"
	"ekicare/internal/usecase/commands"

	"go.uber.org/fx"
)

const runTimeout = 2 * time.Minute

func main() {
	var sweep commands.SweepCommands

	app := fx.New(
		bootstrap.CoreModule,
		fx.NopLogger,
		fx.Populate(&sweep),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		slog.Error("sweep failed to start", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	result, err := sweep.RunCompletionSweep(ctx)
	cancel()

	exitCode := 0
	if err != nil {
		slog.Error("sweep failed", "error", err)
		exitCode = 1
	} else {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]any{
			"completed": result.Completed,
			"ids":       result.IDs,
			"ranAt":     result.RanAt,
		})
	}

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("sweep failed to stop cleanly", "error", err)
	}
	os.Exit(exitCode)
}
