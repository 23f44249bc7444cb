package config

import (
	"time"

	"go.trai.ch/cadence/internal/core/domain"
)

// File represents the structure of the cadence.yaml configuration file.
type File struct {
	Server    ServerDTO    `yaml:"server"`
	Scheduler SchedulerDTO `yaml:"scheduler"`
	Log       LogDTO       `yaml:"log"`
	Tracing   TracingDTO   `yaml:"tracing"`
}

// ServerDTO represents the server section.
type ServerDTO struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	RequestTimeout  time.Duration `yaml:"requestTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	MaxBodyBytes    int64         `yaml:"maxBodyBytes"`
	AllowedOrigins  []string      `yaml:"allowedOrigins"`
}

// SchedulerDTO represents the scheduler section.
type SchedulerDTO struct {
	MaxTasks           int  `yaml:"maxTasks"`
	StrictDependencies bool `yaml:"strictDependencies"`
}

// LogDTO represents the log section.
type LogDTO struct {
	Format  string `yaml:"format"`
	Verbose bool   `yaml:"verbose"`
}

// TracingDTO represents the tracing section.
type TracingDTO struct {
	Enabled bool `yaml:"enabled"`
}

// newFile seeds a File with cfg so that keys absent from the YAML keep their values.
func newFile(cfg *domain.Config) File {
	return File{
		Server: ServerDTO{
			Addr:            cfg.Server.Addr,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			RequestTimeout:  cfg.Server.RequestTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
			MaxBodyBytes:    cfg.Server.MaxBodyBytes,
			AllowedOrigins:  cfg.Server.AllowedOrigins,
		},
		Scheduler: SchedulerDTO{
			MaxTasks:           cfg.Scheduler.MaxTasks,
			StrictDependencies: cfg.Scheduler.StrictDependencies,
		},
		Log: LogDTO{
			Format:  cfg.Log.Format,
			Verbose: cfg.Log.Verbose,
		},
		Tracing: TracingDTO{
			Enabled: cfg.Tracing.Enabled,
		},
	}
}

func (f *File) toDomain() *domain.Config {
	return &domain.Config{
		Server: domain.ServerConfig{
			Addr:            f.Server.Addr,
			ReadTimeout:     f.Server.ReadTimeout,
			WriteTimeout:    f.Server.WriteTimeout,
			RequestTimeout:  f.Server.RequestTimeout,
			ShutdownTimeout: f.Server.ShutdownTimeout,
			MaxBodyBytes:    f.Server.MaxBodyBytes,
			AllowedOrigins:  f.Server.AllowedOrigins,
		},
		Scheduler: domain.SchedulerConfig{
			MaxTasks:           f.Scheduler.MaxTasks,
			StrictDependencies: f.Scheduler.StrictDependencies,
		},
		Log: domain.LogConfig{
			Format:  f.Log.Format,
			Verbose: f.Log.Verbose,
		},
		Tracing: domain.TracingConfig{
			Enabled: f.Tracing.Enabled,
		},
	}
}
