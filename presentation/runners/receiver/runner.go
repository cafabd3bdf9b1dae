package receiver

import (
	"context"
	"io"
	"time"
	"udpreceiver/application"
	"udpreceiver/domain/app"
	receiver_configuration "udpreceiver/infrastructure/PAL/configuration/receiver"
	"udpreceiver/infrastructure/listeners/udp_listener"
	"udpreceiver/infrastructure/relay"
	"udpreceiver/infrastructure/telemetry/trafficstats"
	"udpreceiver/presentation/console"
	"udpreceiver/presentation/ui/tui"

	"golang.org/x/sync/errgroup"
)

const (
	statsSampleInterval = time.Second
	statsEMAAlpha       = 0.3
	configPollInterval  = 30 * time.Second
)

type Runner struct {
	deps AppDependencies
	// ready is closed once the socket is bound; used by tests.
	ready chan struct{}
	// listener is set before ready is closed.
	listener *udp_listener.Listener
}

func NewRunner(deps AppDependencies) *Runner {
	return &Runner{
		deps:  deps,
		ready: make(chan struct{}),
	}
}

// Run serves datagrams until ctx is cancelled or a fatal error occurs. The
// listener's error, if any, is what Run returns.
func (r *Runner) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	conf := r.deps.Configuration()
	logger := r.deps.Logger()

	collector := trafficstats.NewCollector(statsSampleInterval, statsEMAAlpha)
	handlers := application.Handlers{console.NewPrinter(r.output())}

	var telemetryRelay *relay.Relay
	if conf.Relay.Enabled {
		telemetryRelay = relay.NewRelay(
			conf.Relay,
			relay.NewFileStore(conf.Relay.DataFilePath),
			logger.With().Str("component", "relay").Logger(),
		)
		handlers = append(handlers, telemetryRelay)
	}

	l := udp_listener.NewListener(conf.Listener, handlers, collector, logger.With().Str("component", "listener").Logger())
	r.listener = l

	eg, egCtx := errgroup.WithContext(runCtx)

	eg.Go(func() error {
		return l.Start(egCtx)
	})
	eg.Go(func() error {
		select {
		case <-l.Ready():
			close(r.ready)
		case <-egCtx.Done():
		}
		return nil
	})
	eg.Go(func() error {
		collector.Start(egCtx)
		return nil
	})
	eg.Go(func() error {
		watcher := receiver_configuration.NewConfigWatcher(
			r.deps.ConfigurationManager(),
			r.deps.LevelSetter(),
			configPollInterval,
			logger.With().Str("component", "config-watcher").Logger(),
		)
		watcher.Watch(egCtx)
		return nil
	})
	if telemetryRelay != nil {
		eg.Go(func() error {
			return telemetryRelay.Run(egCtx)
		})
	}
	if r.deps.UIMode() == app.TUI {
		eg.Go(func() error {
			return tui.Run(egCtx, tui.DashboardOptions{
				Stats:   collector,
				Address: l,
				Feed:    r.deps.Feed(),
				Cancel:  cancel,
			})
		})
	}

	return eg.Wait()
}

func (r *Runner) output() io.Writer {
	if r.deps.UIMode() == app.TUI && r.deps.Feed() != nil {
		return r.deps.Feed()
	}
	return r.deps.Stdout()
}
