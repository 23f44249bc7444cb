// Package config provides the configuration loader for cadence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.trai.ch/cadence/internal/core/domain"
	"go.trai.ch/cadence/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file, a dotenv file and the environment.
type Loader struct {
	Logger ports.Logger
	// EnvFile is the dotenv file loaded before environment overrides are applied.
	EnvFile string
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, EnvFile: domain.EnvFileName}
}

// Load reads the configuration.
// An empty path looks for cadence.yaml in the working directory and falls back to
// the defaults if it does not exist. An explicit path must exist.
func (l *Loader) Load(path string) (*domain.Config, error) {
	if err := l.loadEnvFile(); err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = domain.ConfigFileName
	}

	cfg := domain.DefaultConfig()

	// #nosec G304 -- path is provided by the user
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if cfg, err = parse(data, cfg); err != nil {
			return nil, zerr.With(err, "path", path)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		l.Logger.Debug(fmt.Sprintf("no %s found, using defaults", domain.ConfigFileName))
	case errors.Is(err, fs.ErrNotExist):
		err := zerr.Wrap(domain.ErrConfigNotFound, fmt.Sprintf("config file %s does not exist", path))
		return nil, zerr.With(err, "path", path)
	default:
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return cfg, nil
}

func (l *Loader) loadEnvFile() error {
	if l.EnvFile == "" {
		return nil
	}
	err := godotenv.Load(l.EnvFile)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return zerr.With(zerr.Wrap(err, domain.ErrEnvLoadFailed.Error()), "path", l.EnvFile)
}

// parse decodes data over base. Unknown keys are rejected.
func parse(data []byte, base *domain.Config) (*domain.Config, error) {
	file := newFile(base)

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return file.toDomain(), nil
}

// applyEnv applies the PORT and CADENCE_LOG_FORMAT overrides.
func applyEnv(cfg *domain.Config) error {
	if port := os.Getenv(domain.EnvPort); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 0 || n > 65535 {
			return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "PORT must be a port number"), "port", port)
		}
		host, _, err := net.SplitHostPort(cfg.Server.Addr)
		if err != nil {
			host = ""
		}
		cfg.Server.Addr = net.JoinHostPort(host, port)
	}

	if format := os.Getenv(domain.EnvLogFormat); format != "" {
		cfg.Log.Format = format
	}

	return nil
}

func validate(cfg *domain.Config) error {
	invalid := func(msg, key string, value any) error {
		return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, msg), key, value)
	}

	switch {
	case cfg.Server.Addr == "":
		return zerr.Wrap(domain.ErrConfigInvalid, "server.addr must not be empty")
	case cfg.Server.MaxBodyBytes <= 0:
		return invalid("server.maxBodyBytes must be positive", "maxBodyBytes", cfg.Server.MaxBodyBytes)
	case cfg.Server.ReadTimeout < 0, cfg.Server.WriteTimeout < 0,
		cfg.Server.RequestTimeout < 0, cfg.Server.ShutdownTimeout < 0:
		return zerr.Wrap(domain.ErrConfigInvalid, "server timeouts must not be negative")
	case cfg.Scheduler.MaxTasks < 0:
		return invalid("scheduler.maxTasks must not be negative", "maxTasks", cfg.Scheduler.MaxTasks)
	case cfg.Log.Format != domain.LogFormatPretty && cfg.Log.Format != domain.LogFormatJSON:
		return invalid("log.format must be pretty or json", "format", cfg.Log.Format)
	}
	return nil
}
