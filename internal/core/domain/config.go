package domain

import "time"

// Log formats accepted by LogConfig.Format.
const (
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// Config is the runtime configuration of cadence.
type Config struct {
	Server    ServerConfig
	Scheduler SchedulerConfig
	Log       LogConfig
	Tracing   TracingConfig
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	AllowedOrigins  []string
}

// SchedulerConfig bounds and tunes scheduling requests.
type SchedulerConfig struct {
	// MaxTasks is the largest number of tasks accepted in one request. Zero disables the limit.
	MaxTasks int
	// StrictDependencies rejects dependencies that name a title outside the request.
	StrictDependencies bool
}

// LogConfig selects the log output.
type LogConfig struct {
	Format  string
	Verbose bool
}

// TracingConfig toggles span logging.
type TracingConfig struct {
	Enabled bool
}

// DefaultConfig returns the configuration used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxBodyBytes:    1 << 20,
			AllowedOrigins:  []string{"*"},
		},
		Scheduler: SchedulerConfig{
			MaxTasks: 10000,
		},
		Log: LogConfig{
			Format: LogFormatPretty,
		},
	}
}
