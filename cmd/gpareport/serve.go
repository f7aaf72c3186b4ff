package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dshills/gpareport/internal/config"
	"github.com/dshills/gpareport/internal/logging"
	"github.com/dshills/gpareport/internal/profile"
	"github.com/dshills/gpareport/internal/server"
)

func newServeCmd(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve report generation over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags(), *configFile)
			if err != nil {
				return exitError(3, "failed to load config: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				return exitError(3, "invalid configuration: %v", err)
			}
			if _, err := profile.LoadBuiltin(cfg.Profile); err != nil {
				return exitError(3, "failed to load profile: %v", err)
			}

			logger := logging.NewJSON(os.Stderr)
			defer logger.Sync()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			srv := server.New(cfg, version, logger, reg)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.ListenAndServe(ctx, cfg.Addr, srv.Routes(), logger)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":8080", "Listen address")
	flags.String("profile", profile.Default, "Default column profile name")
	flags.String("credit-policy", "all", "Default credit policy: all or graded")
	flags.String("semester-order", "first-seen", "Default semester order: first-seen or natural")
	flags.Int64("max-body-bytes", 10<<20, "Maximum request body size")

	return cmd
}
