package settings

type LogFormat string

const (
	ConsoleLogFormat LogFormat = "console"
	JSONLogFormat    LogFormat = "json"
)

type LoggingSettings struct {
	Level  string    `json:"Level"`
	Format LogFormat `json:"Format"`
}
