// Package config loads todoer settings from defaults, an optional YAML file,
// a .env file and TODOER_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/llm"
	"github.com/alexanderramin/todoer/internal/scheduler"
)

const (
	envPrefix  = "TODOER"
	configName = "config"
	appDir     = ".todoer"
)

type Config struct {
	DBPath    string          `mapstructure:"db_path" validate:"required"`
	Log       LogConfig       `mapstructure:"log"`
	Schedule  ScheduleConfig  `mapstructure:"schedule"`
	Reminders RemindersConfig `mapstructure:"reminders"`
	LLM       LLMConfig       `mapstructure:"llm"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

type ScheduleConfig struct {
	Mode     string `mapstructure:"mode" validate:"oneof=strict best-effort"`
	DayStart string `mapstructure:"day_start" validate:"required"`
	DayEnd   string `mapstructure:"day_end" validate:"required"`
	SlotMin  int    `mapstructure:"slot_min" validate:"min=1,max=60"`
}

type RemindersConfig struct {
	LeadMin int `mapstructure:"lead_min" validate:"min=1,max=240"`
}

type LLMConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	LogCalls   bool   `mapstructure:"log_calls"`
	Endpoint   string `mapstructure:"endpoint" validate:"required,url"`
	Model      string `mapstructure:"model" validate:"required"`
	Token      string `mapstructure:"token"`
	TimeoutMs  int    `mapstructure:"timeout_ms" validate:"min=0"`
	MaxRetries int    `mapstructure:"max_retries" validate:"min=0,max=5"`
}

// Options locate the config sources. Zero values use the defaults under
// the user's home directory and ./.env.
type Options struct {
	ConfigFile string
	EnvFile    string
	HomeDir    string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads and validates the configuration.
func Load(opts Options) (*Config, error) {
	home := opts.HomeDir
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		home = h
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && (opts.EnvFile != "" || !errors.Is(err, fs.ErrNotExist)) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v, home)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.AddConfigPath(filepath.Join(home, appDir))
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.LLM.Token == "" {
		cfg.LLM.Token = os.Getenv("GITHUB_TOKEN")
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Schedule.Mode = strings.ToLower(cfg.Schedule.Mode)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, home string) {
	llmDefaults := llm.DefaultConfig()

	v.SetDefault("db_path", filepath.Join(home, appDir, "todoer.db"))
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("schedule.mode", string(scheduler.ModeStrict))
	v.SetDefault("schedule.day_start", domain.FormatClock(scheduler.DefaultWindow.Start))
	v.SetDefault("schedule.day_end", domain.FormatClock(scheduler.DefaultWindow.End))
	v.SetDefault("schedule.slot_min", scheduler.DefaultSlotMin)
	v.SetDefault("reminders.lead_min", 5)
	v.SetDefault("llm.enabled", llmDefaults.Enabled)
	v.SetDefault("llm.log_calls", llmDefaults.LogCalls)
	v.SetDefault("llm.endpoint", llmDefaults.Endpoint)
	v.SetDefault("llm.model", llmDefaults.Model)
	v.SetDefault("llm.token", "")
	v.SetDefault("llm.timeout_ms", 0)
	v.SetDefault("llm.max_retries", llmDefaults.MaxRetries)
}

// Validate runs struct validation plus the checks tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Window(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Window parses the schedulable day.
func (c *Config) Window() (scheduler.Window, error) {
	start, err := domain.ParseClock(c.Schedule.DayStart)
	if err != nil {
		return scheduler.Window{}, fmt.Errorf("schedule.day_start: %w", err)
	}
	end, err := domain.ParseClock(c.Schedule.DayEnd)
	if err != nil {
		return scheduler.Window{}, fmt.Errorf("schedule.day_end: %w", err)
	}
	w := scheduler.Window{Start: start, End: end}
	if err := w.Validate(); err != nil {
		return scheduler.Window{}, err
	}
	return w, nil
}

// SchedulerOptions converts the schedule section for the engine.
func (c *Config) SchedulerOptions() (scheduler.Options, error) {
	w, err := c.Window()
	if err != nil {
		return scheduler.Options{}, err
	}
	mode, err := scheduler.ParsePlacementMode(c.Schedule.Mode)
	if err != nil {
		return scheduler.Options{}, err
	}
	return scheduler.Options{Window: w, SlotMin: c.Schedule.SlotMin, Mode: mode}, nil
}

// LLMClientConfig overlays the llm section on the client defaults.
func (c *Config) LLMClientConfig() llm.LLMConfig {
	out := llm.DefaultConfig().WithTimeout(c.LLM.TimeoutMs)
	out.Enabled = c.LLM.Enabled
	out.LogCalls = c.LLM.LogCalls
	out.Endpoint = c.LLM.Endpoint
	out.Model = c.LLM.Model
	out.Token = c.LLM.Token
	out.MaxRetries = c.LLM.MaxRetries
	return out
}

func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	}
	return slog.LevelWarn
}
