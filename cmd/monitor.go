package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lightbnb/scheduler"
)

var (
	monitorCron     string
	monitorInterval time.Duration
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Ping the pool on a schedule and log its usage",
	Long: `Run the pool health monitor until interrupted (Ctrl+C).

The schedule comes from --cron, then --interval, then the monitor section
of the config file.`,
	Example: `  lightbnb monitor --cron "*/5 * * * *"
  lightbnb monitor --interval 30s`,
	RunE:        runMonitor,
	Annotations: map[string]string{annotationDatabase: ""},
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().StringVar(&monitorCron, "cron", "", "cron expression (overrides config)")
	monitorCmd.Flags().DurationVar(&monitorInterval, "interval", 0, "fixed interval (overrides config)")
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mcfg := app.cfg.Monitor
	if monitorCron != "" {
		mcfg.Cron = monitorCron
		mcfg.Interval = 0
	} else if monitorInterval > 0 {
		mcfg.Cron = ""
		mcfg.Interval = monitorInterval
	}

	if app.store == nil {
		return fmt.Errorf("monitor: no connection pool")
	}
	m := scheduler.New(mcfg, app.store, app.log)
	if err := m.CheckNow(ctx); err != nil {
		app.log.Warn().Err(err).Msg("initial pool check failed")
	}
	if err := m.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	app.log.Info().Msg("shutting down monitor")
	m.Stop()
	return nil
}
