package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = "todos"
	envPrefix  = "TODOS"
)

const (
	KeyServerAddr            = "server.addr"
	KeyServerShutdownTimeout = "server.shutdown_timeout"
	KeySessionCookieName     = "session.cookie_name"
	KeySessionSecret         = "session.secret"
	KeySessionIdleTTL        = "session.idle_ttl"
	KeySessionSweepInterval  = "session.sweep_interval"
	KeyListsRejectSameName   = "lists.reject_same_name_rename"
	KeyLogLevel              = "log.level"
	KeyLogFormat             = "log.format"
)

type Config struct {
	Server  Server  `mapstructure:"server" toml:"server"`
	Session Session `mapstructure:"session" toml:"session"`
	Lists   Lists   `mapstructure:"lists" toml:"lists"`
	Log     Log     `mapstructure:"log" toml:"log"`
}

type Server struct {
	Addr            string        `mapstructure:"addr" toml:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" toml:"shutdown_timeout"`
}

type Session struct {
	CookieName    string        `mapstructure:"cookie_name" toml:"cookie_name"`
	Secret        string        `mapstructure:"secret" toml:"secret"`
	IdleTTL       time.Duration `mapstructure:"idle_ttl" toml:"idle_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval" toml:"sweep_interval"`
}

type Lists struct {
	RejectSameNameRename bool `mapstructure:"reject_same_name_rename" toml:"reject_same_name_rename"`
}

type Log struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:            "127.0.0.1:4567",
			ShutdownTimeout: 10 * time.Second,
		},
		Session: Session{
			CookieName:    "todos_session",
			IdleTTL:       12 * time.Hour,
			SweepInterval: time.Minute,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns $HOME/.config/todos/config.toml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", configDir, configName+"."+configType), nil
}

// Load layers defaults, the TOML file and TODOS_* environment variables into v
// and decodes the result. An explicit path must exist; the default path may not.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	setDefaults(v, Default())
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType(configType)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		defaultPath, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		v.SetConfigName(configName)
		v.AddConfigPath(filepath.Dir(defaultPath))

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	return Decode(v)
}

func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr is required")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	if strings.TrimSpace(c.Session.CookieName) == "" {
		return errors.New("session.cookie_name is required")
	}
	if c.Session.IdleTTL < 0 {
		return fmt.Errorf("session.idle_ttl must not be negative, got %s", c.Session.IdleTTL)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "pretty":
	default:
		return fmt.Errorf("unsupported log.format %q", c.Log.Format)
	}

	return nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault(KeyServerAddr, cfg.Server.Addr)
	v.SetDefault(KeyServerShutdownTimeout, cfg.Server.ShutdownTimeout)
	v.SetDefault(KeySessionCookieName, cfg.Session.CookieName)
	v.SetDefault(KeySessionSecret, cfg.Session.Secret)
	v.SetDefault(KeySessionIdleTTL, cfg.Session.IdleTTL)
	v.SetDefault(KeySessionSweepInterval, cfg.Session.SweepInterval)
	v.SetDefault(KeyListsRejectSameName, cfg.Lists.RejectSameNameRename)
	v.SetDefault(KeyLogLevel, cfg.Log.Level)
	v.SetDefault(KeyLogFormat, cfg.Log.Format)
}
