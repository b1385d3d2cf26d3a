package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/klabast/wb-services/geo-events/internal/model"
	"github.com/klabast/wb-services/geo-events/internal/storage"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"), false)
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, storage.DefaultNamespace, cfg.Storage.Namespace)
	assert.Equal(t, DefaultDataDir, filepath.Base(cfg.Storage.Dir))
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, LogFormatConsole, cfg.Log.Format)
	assert.Equal(t, "USD", cfg.Display.Currency)
	assert.Equal(t, "en-US", cfg.Display.Locale)
	assert.Empty(t, cfg.Metrics.Textfile)
}

func TestLoadConfigRequiredFileMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"), true)
	assert.Error(t, err)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: sqlite
  dir: /var/lib/geo-events
  namespace: staging
log:
  level: debug
  format: json
metrics:
  textfile: /tmp/geo.prom
display:
  currency: EUR
  locale: de-DE
  timezone: UTC
`)
	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)

	assert.Equal(t, StorageConfig{Backend: BackendSQLite, Dir: "/var/lib/geo-events", Namespace: "staging"}, cfg.Storage)
	assert.Equal(t, LogConfig{Level: "debug", Format: LogFormatJSON}, cfg.Log)
	assert.Equal(t, "/tmp/geo.prom", cfg.Metrics.Textfile)
	assert.Equal(t, DisplayConfig{Currency: "EUR", Locale: "de-DE", Timezone: "UTC"}, cfg.Display)
}

func TestLoadConfigEnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: sqlite\n")
	t.Setenv("GEO_EVENTS_STORAGE_BACKEND", BackendMemory)
	t.Setenv("GEO_EVENTS_CURRENCY", "GBP")

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "GBP", cfg.Display.Currency)
}

func TestLoadConfigInvalid(t *testing.T) {
	for name, body := range map[string]string{
		"backend":  "storage:\n  backend: redis\n",
		"format":   "log:\n  format: xml\n",
		"level":    "log:\n  level: loud\n",
		"timezone": "display:\n  timezone: Mars/Olympus\n",
		"yaml":     "storage: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body), true)
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(LogConfig{Level: "error", Format: LogFormatJSON}, false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.WarnLevel))

	log, err = NewLogger(LogConfig{Level: "error", Format: LogFormatConsole}, true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))

	_, err = NewLogger(LogConfig{Level: "loud"}, false)
	assert.Error(t, err)
}

func TestOpenRepository(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	for _, backend := range []string{BackendFile, BackendSQLite, BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			repo, closeRepo, err := OpenRepository(StorageConfig{Backend: backend, Dir: dir, Namespace: "test"}, zap.NewNop())
			require.NoError(t, err)
			require.NotNil(t, closeRepo)

			_, err = repo.Load()
			assert.ErrorIs(t, err, storage.ErrNotFound)
			require.NoError(t, repo.Save(model.Seed()))
			geos, err := repo.Load()
			require.NoError(t, err)
			assert.Len(t, geos, 4)
			assert.NoError(t, closeRepo())
		})
	}

	_, _, err := OpenRepository(StorageConfig{Backend: "redis"}, zap.NewNop())
	assert.Error(t, err)
}

func TestOpenAndClose(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		Storage: StorageConfig{Backend: BackendFile, Dir: dir, Namespace: storage.DefaultNamespace},
		Metrics: MetricsConfig{Textfile: filepath.Join(dir, "geo_events.prom")},
	}
	a, err := Open(cfg, nil)
	require.NoError(t, err)
	assert.Len(t, a.Store.Geos(), 4)

	a.Store.DeleteEvent("global", a.Store.EventsByGeo("global")[0].ID)
	require.NoError(t, a.Close())

	_, err = os.Stat(filepath.Join(dir, storage.DefaultNamespace+storage.FileSuffix))
	assert.NoError(t, err, "state file written")
	prom, err := os.ReadFile(cfg.Metrics.Textfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `geo_events_store_mutations_total{op="delete",outcome="applied"} 1`)

	// a second app sees the persisted change
	b, err := Open(cfg, nil)
	require.NoError(t, err)
	assert.Len(t, b.Store.EventsByGeo("global"), 1)
	require.NoError(t, b.Close())
}
