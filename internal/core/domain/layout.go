package domain

const (
	// ConfigFileName is the name of the configuration file looked up in the working directory.
	ConfigFileName = "cadence.yaml"

	// EnvFileName is the name of the dotenv file loaded at startup.
	EnvFileName = ".env"

	// DefaultAddr is the listen address of the HTTP API.
	DefaultAddr = ":3000"

	// EnvPort overrides the port of the listen address.
	EnvPort = "PORT"

	// EnvLogFormat overrides the log format.
	EnvLogFormat = "CADENCE_LOG_FORMAT"

	// StdinPath is the task file argument that reads from standard input.
	StdinPath = "-"
)

// Output formats of the schedule command.
const (
	OutputText = "text"
	OutputJSON = "json"
)
