package receiver

import (
	"io"
	"udpreceiver/domain/app"
	receiver_configuration "udpreceiver/infrastructure/PAL/configuration/receiver"
	"udpreceiver/presentation/ui/tui"

	"github.com/rs/zerolog"
)

type AppDependencies interface {
	Configuration() receiver_configuration.Configuration
	ConfigurationManager() receiver_configuration.ConfigurationManager
	LevelSetter() receiver_configuration.LevelSetter
	Logger() zerolog.Logger
	UIMode() app.UIMode
	// Stdout receives the datagram output in CLI mode.
	Stdout() io.Writer
	// Feed receives the datagram output in TUI mode.
	Feed() *tui.Feed
}

type Dependencies struct {
	configuration        receiver_configuration.Configuration
	configurationManager receiver_configuration.ConfigurationManager
	levelSetter          receiver_configuration.LevelSetter
	logger               zerolog.Logger
	uiMode               app.UIMode
	stdout               io.Writer
	feed                 *tui.Feed
}

func NewDependencies(
	configuration receiver_configuration.Configuration,
	configurationManager receiver_configuration.ConfigurationManager,
	levelSetter receiver_configuration.LevelSetter,
	logger zerolog.Logger,
	uiMode app.UIMode,
	stdout io.Writer,
	feed *tui.Feed,
) AppDependencies {
	return &Dependencies{
		configuration:        configuration,
		configurationManager: configurationManager,
		levelSetter:          levelSetter,
		logger:               logger,
		uiMode:               uiMode,
		stdout:               stdout,
		feed:                 feed,
	}
}

func (d Dependencies) Configuration() receiver_configuration.Configuration {
	return d.configuration
}

func (d Dependencies) ConfigurationManager() receiver_configuration.ConfigurationManager {
	return d.configurationManager
}

func (d Dependencies) LevelSetter() receiver_configuration.LevelSetter {
	return d.levelSetter
}

func (d Dependencies) Logger() zerolog.Logger {
	return d.logger
}

func (d Dependencies) UIMode() app.UIMode {
	return d.uiMode
}

func (d Dependencies) Stdout() io.Writer {
	return d.stdout
}

func (d Dependencies) Feed() *tui.Feed {
	return d.feed
}
