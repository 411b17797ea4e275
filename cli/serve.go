package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rgtlai/ai-newsletter/api"
	"github.com/rgtlai/ai-newsletter/scheduler"
)

var withSchedule bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			exitErr("config", err)
		}
		setupLogging(cfg.LogLevel)

		p, fetcher, sc, err := buildPipeline(cfg)
		if err != nil {
			exitErr("init", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if withSchedule {
			sched, err := scheduler.NewScheduler(cfg.Timezone)
			if err != nil {
				exitErr("scheduler", err)
			}
			err = sched.ScheduleWeekly(cfg.DigestDay, cfg.DigestTime, func() {
				if err := runGeneration(context.Background(), cfg, p, fetcher); err != nil {
					slog.Error("scheduled generation failed", "error", err)
				}
			})
			if err != nil {
				exitErr("schedule", err)
			}
			sched.Start()
			defer sched.Stop()
			slog.Info("weekly generation scheduled",
				"day", cfg.DigestDay, "time", cfg.DigestTime, "timezone", cfg.Timezone,
				"next_run", sched.NextRun())
		}

		server := api.NewServer(cfg.Port, p, fetcher, sc, api.WithAllowedOrigin(cfg.AllowedOrigin))
		if err := server.Start(ctx); err != nil {
			exitErr("server", err)
		}
	},
}

func init() {
	serveCmd.Flags().BoolVar(&withSchedule, "schedule", false, "Also run the weekly newsletter generation on the configured schedule")
	RootCmd.AddCommand(serveCmd)
}
