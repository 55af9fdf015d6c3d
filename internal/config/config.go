package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Export struct {
		// Dir seeds the export folder when none has been chosen yet.
		Dir string `yaml:"dir"`
	} `yaml:"export"`
	Schedule struct {
		Export   string `yaml:"export"`
		Reminder string `yaml:"reminder"`
		Log      string `yaml:"log"`
		Weekly   string `yaml:"weekly"`
	} `yaml:"schedule"`
	Timezone string `yaml:"timezone"`
	Log      struct {
		Debug bool `yaml:"debug"`
	} `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.Database.Path = "/data/life-os.db"
	cfg.Schedule.Export = "5 0 * * *"
	cfg.Schedule.Reminder = "0 8 * * *"
	cfg.Schedule.Log = "0 20 * * *"
	cfg.Schedule.Weekly = "0 19 * * 0"
	cfg.Timezone = "UTC"
	return cfg
}

// Load builds the configuration from defaults, then the YAML file at path (if
// path is not empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Telegram.Token = getEnv("TG_TOKEN", c.Telegram.Token)
	if chatIDStr := getEnv("TG_CHAT_ID", ""); chatIDStr != "" {
		chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TG_CHAT_ID: %w", err)
		}
		c.Telegram.ChatID = chatID
	}
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.Export.Dir = getEnv("EXPORT_DIR", c.Export.Dir)
	c.Timezone = getEnv("TIMEZONE", c.Timezone)
	if debug := getEnv("LOG_DEBUG", ""); debug != "" {
		v, err := strconv.ParseBool(debug)
		if err != nil {
			return fmt.Errorf("invalid LOG_DEBUG: %w", err)
		}
		c.Log.Debug = v
	}
	return nil
}

// Validate checks field values. The Telegram bot is optional, but a token
// without a chat ID is rejected.
func (c *Config) Validate() error {
	var errs []error

	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		errs = append(errs, errors.New("telegram.chat_id is required when telegram.token is set"))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path must not be empty"))
	}
	if c.Server.Port != "" {
		if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
			errs = append(errs, fmt.Errorf("server.port must be 1-65535 (got %q)", c.Server.Port))
		}
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	for name, spec := range map[string]string{
		"export":   c.Schedule.Export,
		"reminder": c.Schedule.Reminder,
		"log":      c.Schedule.Log,
		"weekly":   c.Schedule.Weekly,
	} {
		if strings.TrimSpace(spec) == "" {
			continue
		}
		if _, err := parser.Parse(spec); err != nil {
			errs = append(errs, fmt.Errorf("schedule.%s: %w", name, err))
		}
	}

	return errors.Join(errs...)
}

// BotEnabled reports whether the Telegram bot should run.
func (c *Config) BotEnabled() bool {
	return c.Telegram.Token != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
