package config

import (
	"errors"
	"log/slog"
	"net"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// EnvPrefix namespaces environment overrides, e.g. SENSEI_SERVER_ADDRESS.
const EnvPrefix = "SENSEI"

var exportFormats = []interface{}{"js", "javascript", "json", "yaml", "yml", "toml"}

type ServerConfig struct {
	Address     string `mapstructure:"address"`
	Environment string `mapstructure:"environment"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type SiteConfig struct {
	File  string `mapstructure:"file"`
	Watch bool   `mapstructure:"watch"`
}

type DocsConfig struct {
	Dir string `mapstructure:"dir"`
}

type ExportConfig struct {
	Format string `mapstructure:"format"`
	Out    string `mapstructure:"out"`
}

type CheckConfig struct {
	Timeout string `mapstructure:"timeout"`
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Site    SiteConfig    `mapstructure:"site"`
	Docs    DocsConfig    `mapstructure:"docs"`
	Export  ExportConfig  `mapstructure:"export"`
	Check   CheckConfig   `mapstructure:"check"`
}

// Load reads the tool settings. With an empty path, config.yaml is looked up in
// ./config and the working directory; a missing file falls back to defaults
// and environment variables. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.environment", EnvDev)
	v.SetDefault("server.address", ":4000")
	v.SetDefault("logging.level", LogLevelInfo)
	v.SetDefault("site.file", "")
	v.SetDefault("site.watch", false)
	v.SetDefault("docs.dir", "./doc")
	v.SetDefault("export.format", "js")
	v.SetDefault("export.out", "")
	v.SetDefault("check.timeout", "5s")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Debug("config file not found, using defaults and environment variables")
	} else {
		slog.Debug("loaded config file", slog.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

// CheckTimeout returns the parsed per-link timeout.
func (c *Config) CheckTimeout() time.Duration {
	d, err := time.ParseDuration(c.Check.Timeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(ServerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ServerConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Environment,
						validation.Required,
						validation.In(EnvDev, EnvStaging, EnvProd),
					),
					validation.Field(&sc.Address,
						validation.Required,
						validation.By(validateHostPort),
					),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
		validation.Field(&c.Docs,
			validation.Required,
			validation.By(func(value interface{}) error {
				dc, ok := value.(DocsConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a DocsConfig")
				}
				return validation.ValidateStruct(&dc,
					validation.Field(&dc.Dir, validation.Required),
				)
			}),
		),
		validation.Field(&c.Export,
			validation.Required,
			validation.By(func(value interface{}) error {
				ec, ok := value.(ExportConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be an ExportConfig")
				}
				return validation.ValidateStruct(&ec,
					validation.Field(&ec.Format,
						validation.Required,
						validation.In(exportFormats...),
					),
				)
			}),
		),
		validation.Field(&c.Check,
			validation.Required,
			validation.By(func(value interface{}) error {
				cc, ok := value.(CheckConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a CheckConfig")
				}
				return validation.ValidateStruct(&cc,
					validation.Field(&cc.Timeout,
						validation.Required,
						validation.By(validateDuration),
					),
				)
			}),
		),
	)
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 2s, 5m, 1h)")
	}
	if d <= 0 {
		return validation.NewError("validation_invalid_duration", "must be positive")
	}

	return nil
}
