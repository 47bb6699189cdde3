package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	t.Run("empty path uses built-in defaults", func(t *testing.T) {
		m, err := Load("")
		require.NoError(t, err)

		cfg := m.Get()
		assert.Equal(t, "faculty-web", cfg.App.Name)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, "en", cfg.I18n.DefaultLanguage)
		assert.Equal(t, "lang", cfg.I18n.CookieName)
		assert.Equal(t, "light", cfg.Theme.Default)
		assert.Equal(t, "theme", cfg.Theme.CookieName)
		assert.Equal(t, "templates", cfg.Templates.Dir)
		assert.False(t, cfg.Metrics.Enabled)
	})

	t.Run("missing files fall back to defaults", func(t *testing.T) {
		m, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "info", m.Get().Logging.Level)
	})
}

func TestLoadMergesFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", `
app:
  name: faculty
  env: production
server:
  port: 8000
  read_timeout: 5s
i18n:
  default_language: en
`)
	writeFile(t, dir, "config.yaml", `
server:
  port: 8443
i18n:
  default_language: ar
`)

	m, err := Load(dir)
	require.NoError(t, err)

	cfg := m.Get()
	assert.Equal(t, "faculty", cfg.App.Name)
	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, 8443, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "ar", cfg.I18n.DefaultLanguage)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FACULTY_SERVER_PORT", "9001")
	t.Setenv("FACULTY_THEME_DEFAULT", "dark")

	m, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 9001, m.Get().Server.Port)
	assert.Equal(t, "dark", m.Get().Theme.Default)
	assert.Equal(t, "0.0.0.0:9001", m.Get().Server.GetServerAddr())
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	testCases := []struct {
		name  string
		body  string
		field string
	}{
		{"unsupported language", "i18n:\n  default_language: fr\n", "i18n.default_language"},
		{"unknown theme", "theme:\n  default: sepia\n", "theme.default"},
		{"port out of range", "server:\n  port: 70000\n", "server.port"},
		{"bad cookie name", "theme:\n  cookie_name: \"my theme\"\n", "theme.cookie_name"},
		{"shared cookie name", "theme:\n  cookie_name: lang\n", "theme.cookie_name"},
		{"metrics path", "metrics:\n  path: metrics\n", "metrics.path"},
		{"log level", "logging:\n  level: loud\n", "logging.level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "default.yaml", tc.body)

			_, err := Load(dir)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		assert.Error(t, Validate(nil))
	})

	t.Run("metrics port collides with server port", func(t *testing.T) {
		m, err := Load("")
		require.NoError(t, err)

		cfg := *m.Get()
		cfg.Metrics.Enabled = true
		cfg.Metrics.Port = cfg.Server.Port

		var verr *ValidationError
		require.True(t, errors.As(Validate(&cfg), &verr))
		assert.Equal(t, "metrics.port", verr.Field)
	})
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "server.read_timeout", fieldPath("Config.Server.ReadTimeout"))
	assert.Equal(t, "i18n.cookie_name", fieldPath("Config.I18n.CookieName"))
}

func TestWatchWithoutDirIsNoop(t *testing.T) {
	m, err := Load("")
	require.NoError(t, err)

	called := false
	require.NoError(t, m.Watch(func(*Config) { called = true }, nil))
	assert.False(t, called)
	assert.NoError(t, m.Close())
}

// replaceFile swaps a file in place the way editors save, so a watcher
// never sees it half written.
func replaceFile(t *testing.T, dir, name, body string) {
	t.Helper()
	tmp := filepath.Join(dir, name+".tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(body), 0o600))
	require.NoError(t, os.Rename(tmp, filepath.Join(dir, name)))
}

const defaultWithDebug = `
app:
  name: from-default
logging:
  level: debug
`

func TestReloadKeepsBothFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultFile, defaultWithDebug)
	writeFile(t, dir, OverrideFile, "server:\n  port: 9001\n")

	m, err := Load(dir)
	require.NoError(t, err)

	writeFile(t, dir, OverrideFile, "server:\n  port: 9002\n")
	cfg, err := m.Reload()
	require.NoError(t, err)

	assert.Same(t, cfg, m.Get())
	assert.Equal(t, 9002, cfg.Server.Port)
	assert.Equal(t, "from-default", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestReloadRejectsInvalidEdit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultFile, defaultWithDebug)

	m, err := Load(dir)
	require.NoError(t, err)
	before := m.Get()

	writeFile(t, dir, DefaultFile, "i18n:\n  default_language: fr\n")
	_, err = m.Reload()
	assert.Error(t, err)
	assert.Same(t, before, m.Get())
}

func TestWatchReloadsMergedConfig(t *testing.T) {
	testCases := []struct {
		name     string
		override bool
		edit     string
		body     string
	}{
		{"default only", false, DefaultFile, defaultWithDebug + "server:\n  port: 9002\n"},
		{"override edited", true, OverrideFile, "server:\n  port: 9002\n"},
		{"default edited under override", true, DefaultFile, defaultWithDebug + "server:\n  port: 7000\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, DefaultFile, defaultWithDebug)
			if tc.override {
				writeFile(t, dir, OverrideFile, "server:\n  port: 9002\n  read_timeout: 3s\n")
			}

			m, err := Load(dir)
			require.NoError(t, err)

			changed := make(chan *Config, 16)
			require.NoError(t, m.Watch(func(cfg *Config) { changed <- cfg }, func(err error) {
				t.Errorf("unexpected reload error: %v", err)
			}))
			t.Cleanup(func() { _ = m.Close() })

			replaceFile(t, dir, tc.edit, tc.body)

			select {
			case <-changed:
			case <-time.After(5 * time.Second):
				t.Fatal("config was not reloaded")
			}

			require.Eventually(t, func() bool { return m.Get().Server.Port == 9002 }, 5*time.Second, 20*time.Millisecond)
			cfg := m.Get()
			assert.Equal(t, "from-default", cfg.App.Name)
			assert.Equal(t, "debug", cfg.Logging.Level)
			if tc.override && tc.edit == DefaultFile {
				assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
			}
		})
	}
}

func TestWatchReportsInvalidEdit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultFile, defaultWithDebug)

	m, err := Load(dir)
	require.NoError(t, err)
	before := m.Get()

	errs := make(chan error, 16)
	require.NoError(t, m.Watch(nil, func(err error) { errs <- err }))
	t.Cleanup(func() { _ = m.Close() })

	replaceFile(t, dir, DefaultFile, "i18n:\n  default_language: fr\n")

	select {
	case err := <-errs:
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr), "got %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("invalid edit was not reported")
	}
	assert.Same(t, before, m.Get())
}

func TestWatchMissingDir(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Error(t, m.Watch(nil, nil))
}
