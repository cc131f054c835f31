package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/chartkit/pkg/chart"
	"github.com/Sumatoshi-tech/chartkit/pkg/config"
	"github.com/Sumatoshi-tech/chartkit/pkg/palette"
	"github.com/Sumatoshi-tech/chartkit/pkg/plotpage"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "light", cfg.Chart.Theme)
	assert.Equal(t, chart.DefaultChartHeight, cfg.Chart.Height)
	assert.Equal(t, chart.FormatDefault, cfg.Chart.ValueFormat)
	assert.Equal(t, chart.DefaultNoDataText, cfg.Chart.NoDataText)
	assert.Equal(t, plotpage.DefaultAssetsHost, cfg.Chart.AssetsHost)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "chartkit", cfg.Telemetry.ServiceName)
	assert.Empty(t, cfg.Telemetry.OTLPEndpoint)
	assert.InDelta(t, 1.0, cfg.Telemetry.SampleRatio, 1e-9)
}

func TestDefault_MatchesLoad(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, cfg, config.Default())
	require.NoError(t, config.Default().Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
chart:
  theme: dark
  height: 400px
  palette: [violet, "#123456"]
  value_format: compact
  decimals: 1
server:
  addr: ":9000"
  read_timeout: 15s
  idle_timeout: 2m
logging:
  level: debug
  format: json
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, plotpage.ThemeDark, cfg.Chart.PageTheme())
	assert.Equal(t, "400px", cfg.Chart.Height)
	assert.Equal(t, []string{"violet", "#123456"}, cfg.Chart.Palette)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Server.IdleTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("CHARTKIT_CHART_THEME", "dark")
	t.Setenv("CHARTKIT_SERVER_ADDR", "0.0.0.0:9090")
	t.Setenv("CHARTKIT_TELEMETRY_OTLP_ENDPOINT", "collector:4317")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "dark", cfg.Chart.Theme)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr)
	assert.Equal(t, "collector:4317", cfg.Telemetry.OTLPEndpoint)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "theme", content: "chart:\n  theme: sepia\n", field: "chart.theme"},
		{name: "height", content: "chart:\n  height: tall\n", field: "chart.height"},
		{name: "format", content: "chart:\n  value_format: roman\n", field: "chart.value_format"},
		{name: "decimals", content: "chart:\n  decimals: 12\n", field: "chart.decimals"},
		{name: "addr", content: "server:\n  addr: nowhere\n", field: "server.addr"},
		{name: "level", content: "logging:\n  level: loud\n", field: "logging.level"},
		{name: "ratio", content: "telemetry:\n  sample_ratio: 2\n", field: "telemetry.sample_ratio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoadConfig_UnknownPaletteColor(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "chart:\n  palette: [chartreuse]\n"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	require.ErrorIs(t, err, config.ErrInvalidPalette)
	require.ErrorIs(t, err, palette.ErrUnknownColor)
}

func TestChartConfig_AreaDefaults(t *testing.T) {
	t.Parallel()

	cc := config.ChartConfig{
		Height:      "200px",
		Palette:     []string{"rose"},
		ValueFormat: chart.FormatPercent,
		NoDataText:  "Nothing yet",
	}

	props, err := cc.AreaDefaults()
	require.NoError(t, err)

	assert.Equal(t, "200px", props.Height)
	assert.Equal(t, "Nothing yet", props.NoDataText)
	assert.Equal(t, []palette.Color{palette.Rose}, props.Colors)
	assert.Equal(t, "25%", props.ValueFormatter(0.25))
	assert.True(t, props.ShowLegend)

	cc.ValueFormat = "roman"

	_, err = cc.AreaDefaults()
	require.ErrorIs(t, err, config.ErrInvalidFormat)
}
