package cli

import (
	"errors"
	"fmt"
	"io"
	"udpreceiver/domain/app"
	"udpreceiver/domain/listener"
	"udpreceiver/infrastructure/PAL/configuration/receiver"
	"udpreceiver/infrastructure/settings"

	"github.com/spf13/pflag"
)

// ErrHelp is returned when -h/--help was requested; usage has been printed.
var ErrHelp = pflag.ErrHelp

// Options is the parsed command line. Only flags the user actually passed
// override the configuration.
type Options struct {
	ConfigPath  string
	ShowVersion bool
	UIMode      app.UIMode

	flags *pflag.FlagSet

	host          string
	port          int
	decodeErrors  string
	logLevel      string
	logFormat     string
	relay         bool
	relayAddr     string
	relayDataFile string
}

// Parse reads args (without the program name). Usage and parse errors are
// written to usage.
func Parse(args []string, usage io.Writer) (*Options, error) {
	opts := &Options{UIMode: app.CLI}
	var tui bool

	flags := pflag.NewFlagSet(app.Name, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {
		_, _ = fmt.Fprintf(usage, "Usage: %s [flags]\n\nFlags:\n%s", app.Name, flags.FlagUsages())
	}

	flags.StringVar(&opts.host, "host", receiver.DefaultHost, "IP address or hostname to bind")
	flags.IntVarP(&opts.port, "port", "p", receiver.DefaultPort, "UDP port to bind, 0 picks a free port")
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "path to a JSON configuration file (env "+receiver.ConfigPathEnv+")")
	flags.StringVar(&opts.decodeErrors, "decode-errors", string(receiver.DefaultDecodeErrorBehavior),
		fmt.Sprintf("what to do with non UTF-8 datagrams: %s or %s", listener.ContinueOnDecodeError, listener.StopOnDecodeError))
	flags.StringVar(&opts.logLevel, "log-level", receiver.DefaultLogLevel, "log level: trace, debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", string(settings.ConsoleLogFormat),
		fmt.Sprintf("log format: %s or %s", settings.ConsoleLogFormat, settings.JSONLogFormat))
	flags.BoolVar(&tui, "tui", false, "show a terminal dashboard instead of plain output")
	flags.BoolVar(&opts.relay, "relay", false, "relay JSON telemetry to WebSocket clients")
	flags.StringVar(&opts.relayAddr, "relay-addr", receiver.DefaultRelayHTTPAddress, "HTTP listen address of the relay")
	flags.StringVar(&opts.relayDataFile, "relay-data-file", receiver.DefaultRelayDataFilePath, "file the relay persists telemetry to")
	flags.BoolVarP(&opts.ShowVersion, "version", "v", false, "print version and exit")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, usageFailure(flags, usage, err)
	}
	if flags.NArg() > 0 {
		return nil, usageFailure(flags, usage, fmt.Errorf("unexpected arguments: %v", flags.Args()))
	}

	if tui {
		opts.UIMode = app.TUI
	}
	opts.flags = flags
	return opts, nil
}

// Apply writes every explicitly passed flag over conf.
func (o *Options) Apply(conf *receiver.Configuration) {
	if o.flags == nil {
		return
	}
	o.flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "host":
			conf.Listener.Host = o.host
		case "port":
			conf.Listener.Port = o.port
		case "decode-errors":
			conf.Listener.DecodeErrorPolicy = listener.DecodeErrorPolicy(o.decodeErrors)
		case "log-level":
			conf.Logging.Level = o.logLevel
		case "log-format":
			conf.Logging.Format = settings.LogFormat(o.logFormat)
		case "relay":
			conf.Relay.Enabled = o.relay
		case "relay-addr":
			conf.Relay.HTTPAddress = o.relayAddr
			conf.Relay.Enabled = true
		case "relay-data-file":
			conf.Relay.DataFilePath = o.relayDataFile
		}
	})
}

func usageFailure(flags *pflag.FlagSet, usage io.Writer, err error) error {
	_, _ = fmt.Fprintln(usage, err)
	flags.Usage()
	return NewUsageError(err)
}
