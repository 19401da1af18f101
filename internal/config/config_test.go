package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "bomsight.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 95, cfg.Quality.AutoPromoteThreshold)
	assert.Equal(t, 70, cfg.Quality.ReviewThreshold)
	assert.Equal(t, 3, cfg.Quality.TransitionMaxAttempts)
	assert.Equal(t, 50, cfg.Quality.TransitionBackoffMS)
	assert.Equal(t, 500, cfg.Risk.StockFloorQty)
	assert.Equal(t, 90, cfg.Risk.LeadTimeThresholdDays)
	assert.InDelta(t, 5.0, cfg.Risk.ObsolescenceHorizonYears, 0.001)
	assert.InDelta(t, 50.0, cfg.Risk.ObsolescenceNeutralScore, 0.001)
	assert.InDelta(t, 20.0, cfg.Risk.SingleSourceFloor, 0.001)
	assert.Equal(t, 4, cfg.Risk.SingleSourceFullCount)
	assert.InDelta(t, -0.2, cfg.Risk.ModifierMin, 0.001)
	assert.InDelta(t, 0.3, cfg.Risk.ModifierMax, 0.001)
	assert.Equal(t, 1000, cfg.Risk.QuantityPivot)
	assert.Equal(t, 60, cfg.Risk.LeadTimePivotDays)
	assert.Equal(t, 7, cfg.Risk.TrendWindowDays)
	assert.InDelta(t, 2.0, cfg.Risk.TrendEpsilon, 0.001)
	assert.Equal(t, 10, cfg.Risk.TopRisks)
	assert.Equal(t, 5, cfg.Batch.MaxConcurrent)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/bomsight
log:
  level: debug
  format: console
quality:
  auto_promote_threshold: 90
  review_threshold: 60
risk:
  top_risks: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/bomsight", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 90, cfg.Quality.AutoPromoteThreshold)
	assert.Equal(t, 60, cfg.Quality.ReviewThreshold)
	assert.Equal(t, 5, cfg.Risk.TopRisks)
	// Defaults still apply for unset values
	assert.Equal(t, 500, cfg.Risk.StockFloorQty)
	assert.Equal(t, 3, cfg.Quality.TransitionMaxAttempts)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("BOMSIGHT_STORE_DRIVER", "postgres")
	t.Setenv("BOMSIGHT_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("BOMSIGHT_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
