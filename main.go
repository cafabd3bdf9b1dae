package main

import (
	"context"
	"io"
	"os"
	"udpreceiver/domain/app"
	"udpreceiver/infrastructure/PAL/configuration/receiver"
	"udpreceiver/infrastructure/PAL/signal"
	"udpreceiver/infrastructure/logging"
	"udpreceiver/presentation/configuring/cli"
	receiverRunner "udpreceiver/presentation/runners/receiver"
	"udpreceiver/presentation/runners/version"
	"udpreceiver/presentation/signals/shutdown"
	"udpreceiver/presentation/ui/tui"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, parseErr := cli.Parse(args, os.Stderr)
	if parseErr != nil {
		if errors.Is(parseErr, cli.ErrHelp) {
			return app.ExitOK
		}
		return app.ExitCode(parseErr)
	}

	appCtx, appCtxCancel := context.WithCancel(context.Background())
	defer appCtxCancel()

	if opts.ShowVersion {
		version.NewRunner().Run(appCtx)
		return app.ExitOK
	}

	conf, manager, confErr := loadConfiguration(opts)
	if confErr != nil {
		return fail(stderrLogger(receiver.NewDefaultConfiguration()), confErr)
	}

	var feed *tui.Feed
	var logOutput io.Writer = os.Stderr
	if opts.UIMode == app.TUI {
		feed = tui.NewFeed(0)
		logOutput = feed
	}
	logger, loggerErr := logging.Setup(conf.Logging, logOutput)
	if loggerErr != nil {
		return fail(stderrLogger(receiver.NewDefaultConfiguration()), loggerErr)
	}

	shutdown.NewHandler(appCtx, appCtxCancel, signal.NewDefaultProvider(), shutdown.NewNotifier(), logger).Handle()

	logger.Debug().
		Str("version", version.Current()).
		Str("mode", opts.UIMode.String()).
		Str("addr", conf.Listener.StringAddr()).
		Bool("relay", conf.Relay.Enabled).
		Msg("starting")

	deps := receiverRunner.NewDependencies(
		*conf,
		manager,
		logging.NewGlobalLevel(),
		logger,
		opts.UIMode,
		os.Stdout,
		feed,
	)
	runErr := receiverRunner.NewRunner(deps).Run(appCtx)
	if runErr != nil {
		// the dashboard no longer owns the terminal, report on stderr
		if opts.UIMode == app.TUI {
			logger = stderrLogger(conf)
		}
		return fail(logger, runErr)
	}

	logger.Debug().Msg("stopped")
	return app.ExitOK
}

// loadConfiguration applies defaults, the configuration file, environment
// overrides and finally command-line flags.
func loadConfiguration(opts *cli.Options) (*receiver.Configuration, receiver.ConfigurationManager, error) {
	manager, managerErr := receiver.NewManager(receiver.NewResolver(opts.ConfigPath), receiver.NewOSStat())
	if managerErr != nil {
		return nil, nil, errors.WithStack(managerErr)
	}

	conf, confErr := manager.Configuration()
	if confErr != nil {
		return nil, nil, errors.Wrap(confErr, "failed to load configuration")
	}

	opts.Apply(conf)
	if validateErr := conf.Validate(); validateErr != nil {
		return nil, nil, errors.Wrap(validateErr, "invalid configuration")
	}
	return conf, manager, nil
}

func stderrLogger(conf *receiver.Configuration) zerolog.Logger {
	logger, err := logging.Setup(conf.Logging, os.Stderr)
	if err != nil {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return logger
}

func fail(logger zerolog.Logger, err error) int {
	code := app.ExitCode(err)
	logger.Error().Stack().Err(errors.WithStack(err)).Int("exit_code", code).Msg("fatal")
	return code
}
