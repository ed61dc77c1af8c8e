package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/homecare-ojt/ltcsim/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulation API over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.log.Sync() //nolint:errcheck

		engine, err := rt.engine(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := rt.store(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = rt.settings.HTTPAddr
		}
		rt.log.Infow("starting API", "store", rt.settings.Store, "tariff_year", engine.Tariff.Metadata.Year)
		return server.New(engine, st, rt.log.Desugar()).ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default: LTCSIM_HTTP_ADDR or :8080)")
	serveCmd.Flags().String("tariff", "", "Path to a tariff YAML file (default: embedded schedule)")
	serveCmd.Flags().Bool("debug", false, "Enable debug logging")
}
