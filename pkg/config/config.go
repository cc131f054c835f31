// Package config loads chartkit settings from a YAML file, CHARTKIT_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/chartkit/pkg/chart"
	"github.com/Sumatoshi-tech/chartkit/pkg/palette"
	"github.com/Sumatoshi-tech/chartkit/pkg/plotpage"
)

// Sentinel validation errors.
var (
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrInvalidPalette = errors.New("invalid chart palette")
	ErrInvalidFormat  = errors.New("invalid value format")
)

// Default configuration values.
const (
	defaultAddr         = "127.0.0.1:8080"
	defaultTheme        = "light"
	defaultValueFormat  = chart.FormatDefault
	defaultSampleRatio  = 1.0
	defaultServiceName  = "chartkit"
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultReadTimeout  = "10s"
	defaultWriteTimeout = "30s"
	defaultIdleTimeout  = "60s"
	defaultShutdown     = "5s"
)

// Config holds all chartkit configuration.
type Config struct {
	Chart     ChartConfig     `mapstructure:"chart"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ChartConfig holds the defaults applied to every rendered chart before a
// document's own options.
type ChartConfig struct {
	Theme       string   `mapstructure:"theme"        validate:"oneof=light dark"`
	Height      string   `mapstructure:"height"       validate:"required,css_length"`
	Palette     []string `mapstructure:"palette"      validate:"dive,required"`
	ValueFormat string   `mapstructure:"value_format" validate:"oneof=default fixed comma compact percent"`
	Decimals    int      `mapstructure:"decimals"     validate:"gte=0,lte=10"`
	NoDataText  string   `mapstructure:"no_data_text"`
	AssetsHost  string   `mapstructure:"assets_host"  validate:"required,url"`
}

// ServerConfig holds gallery server configuration.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"             validate:"required,hostname_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"     validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// TelemetryConfig holds tracing and metrics configuration. An empty OTLP
// endpoint disables export.
type TelemetryConfig struct {
	ServiceName  string  `mapstructure:"service_name"  validate:"required"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SampleRatio  float64 `mapstructure:"sample_ratio"  validate:"gte=0,lte=1"`
}

// LoadConfig loads configuration from file and environment variables. An
// empty path searches ., ./config and /etc/chartkit for chartkit.yaml and
// tolerates its absence.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("chartkit")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("/etc/chartkit")
	}

	viperCfg.SetEnvPrefix("CHARTKIT")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, validateErr
	}

	return &config, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	viperCfg := viper.New()
	setDefaults(viperCfg)

	var config Config

	// Defaults are plain scalars and always decode.
	_ = viperCfg.Unmarshal(&config)

	return &config
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("chart.theme", defaultTheme)
	viperCfg.SetDefault("chart.height", chart.DefaultChartHeight)
	viperCfg.SetDefault("chart.palette", []string{})
	viperCfg.SetDefault("chart.value_format", defaultValueFormat)
	viperCfg.SetDefault("chart.decimals", 0)
	viperCfg.SetDefault("chart.no_data_text", chart.DefaultNoDataText)
	viperCfg.SetDefault("chart.assets_host", plotpage.DefaultAssetsHost)

	viperCfg.SetDefault("server.addr", defaultAddr)
	viperCfg.SetDefault("server.read_timeout", defaultReadTimeout)
	viperCfg.SetDefault("server.write_timeout", defaultWriteTimeout)
	viperCfg.SetDefault("server.idle_timeout", defaultIdleTimeout)
	viperCfg.SetDefault("server.shutdown_timeout", defaultShutdown)

	viperCfg.SetDefault("logging.level", defaultLogLevel)
	viperCfg.SetDefault("logging.format", defaultLogFormat)

	viperCfg.SetDefault("telemetry.service_name", defaultServiceName)
	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.sample_ratio", defaultSampleRatio)
}

// Validate checks struct constraints and that the chart defaults resolve.
func (c *Config) Validate() error {
	err := validatorInstance().Struct(c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, convertValidationError(err))
	}

	_, err = c.Chart.AreaDefaults()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// PageTheme returns the configured page theme.
func (c ChartConfig) PageTheme() plotpage.Theme {
	return plotpage.ParseTheme(c.Theme)
}

// AreaDefaults returns area chart props carrying the configured defaults.
func (c ChartConfig) AreaDefaults() (chart.AreaChartProps, error) {
	props := chart.DefaultAreaChartProps()

	if c.Height != "" {
		props.Height = c.Height
	}

	if c.NoDataText != "" {
		props.NoDataText = c.NoDataText
	}

	if len(c.Palette) > 0 {
		colors, err := palette.ParseColors(c.Palette)
		if err != nil {
			return props, fmt.Errorf("%w: %w", ErrInvalidPalette, err)
		}

		props.Colors = colors
	}

	formatter, err := chart.FormatterByName(c.ValueFormat, c.Decimals)
	if err != nil {
		return props, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	props.ValueFormatter = formatter

	return props, nil
}
