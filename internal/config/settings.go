package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings holds the runtime configuration of the service.
type Settings struct {
	Server    ServerSettings    `mapstructure:"server"`
	Log       LogSettings       `mapstructure:"log"`
	CORS      CORSSettings      `mapstructure:"cors"`
	RateLimit RateLimitSettings `mapstructure:"rate_limit"`
	Metrics   MetricsSettings   `mapstructure:"metrics"`
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogSettings configures the slog handler.
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"` // optional, written in addition to stdout
}

// CORSSettings lists the origins allowed to call the API.
type CORSSettings struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitSettings configures the per-client token bucket.
// A zero RequestsPerSecond disables rate limiting.
type RateLimitSettings struct {
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	ExpiresIn         time.Duration `mapstructure:"expires_in"`
}

// MetricsSettings toggles the Prometheus endpoint.
type MetricsSettings struct {
	Enabled bool `mapstructure:"enabled"`
}

// Addr returns the host:port listen address.
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s%s%d", s.Host, AddrSeparator, s.Port)
}

// SlogLevel converts the configured level name into a slog.Level.
func (l LogSettings) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%s: %w", ErrLogLevel, err)
	}
	return level, nil
}

// Load reads settings from defaults, an optional YAML file and MISRI_* environment
// variables, in increasing order of precedence. A .env file in the working directory
// is loaded first if present.
func Load(path string) (Settings, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(MsgNoDotEnv, LogKeyComponent, CompConfig, LogKeyError, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("%s: %w", ErrConfigRead, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrConfigDecode, err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	slog.Debug(MsgConfigLoaded,
		LogKeyComponent, CompConfig,
		LogKeyFile, v.ConfigFileUsed(),
		LogKeyAddr, s.Server.Addr(),
	)
	return s, nil
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	v := viper.New()
	setDefaults(v)

	var s Settings
	// Defaults always decode.
	_ = v.Unmarshal(&s)
	return s
}

// Validate checks the invariants the server relies on.
func (s Settings) Validate() error {
	var errs []error

	if s.Server.Port < 1 || s.Server.Port > 65535 {
		errs = append(errs, errors.New(ErrPortRange))
	}
	if s.Server.ReadTimeout <= 0 || s.Server.WriteTimeout <= 0 ||
		s.Server.IdleTimeout <= 0 || s.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New(ErrTimeout))
	}
	if s.RateLimit.RequestsPerSecond < 0 || s.RateLimit.Burst < 0 || s.RateLimit.ExpiresIn < 0 {
		errs = append(errs, errors.New(ErrRateLimit))
	}
	if s.Log.Format != LogFormatJSON && s.Log.Format != LogFormatText {
		errs = append(errs, fmt.Errorf("%s: %q", ErrLogFormat, s.Log.Format))
	}
	if _, err := s.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyServerHost, DefaultHost)
	v.SetDefault(KeyServerPort, DefaultPort)
	v.SetDefault(KeyServerReadTimeout, ServerReadTimeout)
	v.SetDefault(KeyServerWriteTimeout, ServerWriteTimeout)
	v.SetDefault(KeyServerIdleTimeout, ServerIdleTimeout)
	v.SetDefault(KeyShutdownTimeout, ShutdownTimeout)

	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, LogFormatJSON)
	v.SetDefault(KeyLogFile, "")

	v.SetDefault(KeyCORSOrigins, []string{DefaultCORSOrigin})

	v.SetDefault(KeyRateLimitRPS, DefaultRateLimitRPS)
	v.SetDefault(KeyRateLimitBurst, DefaultRateLimitBurst)
	v.SetDefault(KeyRateLimitExpiry, DefaultRateLimitExpiry)

	v.SetDefault(KeyMetricsEnabled, true)
}
