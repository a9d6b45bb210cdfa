package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rgehrsitz/finplan/internal/metrics"
	"github.com/rgehrsitz/finplan/internal/server"
	"github.com/rgehrsitz/finplan/internal/watch"
	"github.com/spf13/cobra"
)

func serveCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := a.settings.Server
			if cmd.Flags().Changed("addr") {
				settings.Addr = addr
			}

			m, err := metrics.New(metrics.Config{EnableGoMetrics: true})
			if err != nil {
				return err
			}
			srv, err := server.New(settings, a.engine, m, a.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from settings, :8080)")
	return cmd
}

func watchCmd(a *app) *cobra.Command {
	var debounce time.Duration
	var target, monthly string

	cmd := &cobra.Command{
		Use:   "watch [profile-file]",
		Short: "Re-render the report whenever the profile file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goal, err := goalRequest(target, monthly, 0)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("debounce") {
				debounce = a.settings.Watch.Debounce
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return watch.File(ctx, args[0], debounce, a.logger, func() error {
				return a.renderReport(cmd, args[0], goal)
			})
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Quiet period before re-rendering (default from settings, 250ms)")
	cmd.Flags().StringVar(&target, "target", "", "Savings goal amount")
	cmd.Flags().StringVar(&monthly, "monthly", "", "Monthly contribution toward the goal")
	return cmd
}
