package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"lightbnb/config"
	"lightbnb/storage"
)

const pingTimeout = 5 * time.Second

var ErrNoSchedule = errors.New("monitor needs a cron expression or a positive interval")

// Checker is what the monitor probes. *storage.PostgresStore satisfies it.
type Checker interface {
	Ping(ctx context.Context) error
	Stats() storage.PoolStats
}

// Monitor periodically pings the pool and logs its counters. It never
// reconnects; a failed ping is only reported.
type Monitor struct {
	cfg     config.MonitorConfig
	checker Checker
	log     zerolog.Logger
	cron    *cron.Cron
	ticker  *time.Ticker
	stopCh  chan struct{}
	once    sync.Once
}

func New(cfg config.MonitorConfig, checker Checker, logger zerolog.Logger) *Monitor {
	return &Monitor{
		cfg:     cfg,
		checker: checker,
		log:     logger.With().Str("component", "monitor").Logger(),
		cron:    cron.New(),
		stopCh:  make(chan struct{}),
	}
}

// Start schedules the check on the cron expression when one is set,
// otherwise on the fixed interval.
func (m *Monitor) Start(ctx context.Context) error {
	switch {
	case m.cfg.Cron != "":
		if _, err := m.cron.AddFunc(m.cfg.Cron, func() { m.check(ctx) }); err != nil {
			return fmt.Errorf("invalid cron expression: %w", err)
		}
		m.log.Info().Str("cron", m.cfg.Cron).Msg("starting pool monitor")
		m.cron.Start()
	case m.cfg.Interval > 0:
		m.log.Info().Dur("interval", m.cfg.Interval).Msg("starting pool monitor")
		m.ticker = time.NewTicker(m.cfg.Interval)
		go func() {
			for {
				select {
				case <-m.ticker.C:
					m.check(ctx)
				case <-m.stopCh:
					return
				case <-ctx.Done():
					return
				}
			}
		}()
	default:
		return ErrNoSchedule
	}
	return nil
}

// Stop halts scheduling and waits for a running cron job to finish. It is
// safe to call more than once.
func (m *Monitor) Stop() {
	m.once.Do(func() {
		<-m.cron.Stop().Done()
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.stopCh)
	})
}

// CheckNow runs a single probe synchronously.
func (m *Monitor) CheckNow(ctx context.Context) error {
	return m.check(ctx)
}

func (m *Monitor) check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	err := m.checker.Ping(ctx)
	st := m.checker.Stats()

	evt := m.log.Info()
	if err != nil {
		evt = m.log.Warn().Err(err)
	}
	evt.Dur("ping", time.Since(start)).
		Int32("total_conns", st.Total).
		Int32("idle_conns", st.Idle).
		Int32("acquired_conns", st.Acquired).
		Int32("max_conns", st.Max).
		Msg("pool check")

	return err
}
