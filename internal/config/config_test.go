// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/carchat/internal/locale"
)

// isolate points HOME at a temp dir and clears CARCHAT_* overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"CARCHAT_URL", "CARCHAT_ANON_KEY", "CARCHAT_FUNCTION", "CARCHAT_LANG", "CARCHAT_LOG_LEVEL", "CARCHAT_DB"} {
		t.Setenv(k, "")
	}
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)
	return home
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.Backend.IsConfigured())
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout())
}

func TestLoad_TOML(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".carchat")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[backend]
url = "https://demo.supabase.co"
anon_key = "eyJhbGciOi"
max_retries = 5

[ui]
language = "de"
markdown = false
`), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://demo.supabase.co", cfg.Backend.URL)
	assert.Equal(t, 5, cfg.Backend.MaxRetries)
	assert.Equal(t, "aicarsearch", cfg.Backend.Function)
	assert.Equal(t, 30, cfg.Backend.TimeoutSecs)
	assert.Equal(t, locale.German, cfg.UI.ResolveLanguage())
	assert.False(t, cfg.UI.Markdown)
	assert.True(t, cfg.UI.ShowScores)

	info, err := os.Stat(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadFromPath_Formats(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	files := map[string]string{
		"c.json": `{"backend":{"url":"https://a.example.com","anon_key":"k"},"ui":{"language":"fr"}}`,
		"c.yaml": "backend:\n  url: https://a.example.com\n  anon_key: k\nui:\n  language: fr\n",
		"c.toml": "[backend]\nurl = \"https://a.example.com\"\nanon_key = \"k\"\n[ui]\nlanguage = \"fr\"\n",
	}
	for name, body := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(body), 0600))

			cfg, err := LoadFromPath(path)
			require.NoError(t, err)
			assert.True(t, cfg.Backend.IsConfigured())
			assert.Equal(t, "fr", cfg.UI.Language)
			assert.Equal(t, "info", cfg.Log.Level)
		})
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[backend]\nurl = \"ftp://x\"\nmax_retries = 99\n"), 0600))

	_, err := LoadFromPath(path)
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"backend.url", "backend.max_retries"}, fields)
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	cfg := Default()
	cfg.Backend.URL = "https://demo.supabase.co"
	cfg.Backend.AnonKey = "secret"
	cfg.UI.Language = "es"

	for _, name := range []string{"out.toml", "out.json", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "nested", name)
			require.NoError(t, SaveToPath(cfg, path))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

			loaded, err := LoadFromPath(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

// =============================================================================
// ENV / VALIDATION / GET-SET
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CARCHAT_URL", "https://env.supabase.co")
	t.Setenv("CARCHAT_ANON_KEY", "env-key")
	t.Setenv("CARCHAT_FUNCTION", "carsearch-beta")
	t.Setenv("CARCHAT_LANG", "en_GB.UTF-8")
	t.Setenv("CARCHAT_LOG_LEVEL", "DEBUG")
	t.Setenv("CARCHAT_DB", "/tmp/cars.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.supabase.co", cfg.Backend.URL)
	assert.Equal(t, "env-key", cfg.Backend.AnonKey)
	assert.Equal(t, "carsearch-beta", cfg.Backend.Function)
	assert.Equal(t, "en", cfg.UI.Language)
	assert.Equal(t, "debug", cfg.Log.Level)

	path, err := cfg.StoragePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cars.db", path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad language", func(c *Config) { c.UI.Language = "ja" }, "ui.language"},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"bad function", func(c *Config) { c.Backend.Function = "a/b" }, "backend.function"},
		{"negative rps", func(c *Config) { c.Backend.RequestsPerSecond = -1 }, "backend.requests_per_second"},
		{"timeout", func(c *Config) { c.Backend.TimeoutSecs = 0 }, "backend.timeout_secs"},
		{"max conversations", func(c *Config) { c.Storage.MaxConversations = -2 }, "storage.max_conversations"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("backend.url", "https://x.supabase.co"))
	require.NoError(t, cfg.Set("backend.max_retries", "4"))
	require.NoError(t, cfg.Set("backend.requests_per_second", "0.5"))
	require.NoError(t, cfg.Set("ui.markdown", "false"))
	require.NoError(t, cfg.Set("storage.max_conversations", 20))

	v, err := cfg.Get("backend.url")
	require.NoError(t, err)
	assert.Equal(t, "https://x.supabase.co", v)
	assert.Equal(t, 4, cfg.Backend.MaxRetries)
	assert.Equal(t, 0.5, cfg.Backend.RequestsPerSecond)
	assert.False(t, cfg.UI.Markdown)
	assert.Equal(t, 20, cfg.Storage.MaxConversations)

	_, err = cfg.Get("backend.nope")
	assert.Error(t, err)
	assert.Error(t, cfg.Set("ui", "x"))
	assert.Error(t, cfg.Set("backend.max_retries", "many"))
	_, err = cfg.Get("")
	assert.Error(t, err)
}

func TestGetAllKeys_Resolve(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}
}

func TestString_RedactsKey(t *testing.T) {
	cfg := Default()
	cfg.Backend.AnonKey = "super-secret"
	s := cfg.String()
	assert.NotContains(t, s, "super-secret")
	assert.Contains(t, s, "[REDACTED]")
	assert.Equal(t, "super-secret", cfg.Backend.AnonKey)
}

func TestPaths(t *testing.T) {
	home := isolate(t)
	cfg := Default()

	db, err := cfg.StoragePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".carchat", "carchat.db"), db)

	cfg.Log.File = "stderr"
	lp, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "stderr", lp)

	cfg.Log.File = "~/logs/c.log"
	lp, err = cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "c.log"), lp)
}

func TestFindPath(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".carchat")

	path, exists, err := FindPath()
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(dir, "config.toml"), path)

	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("ui:\n  language: fr\n"), 0600))

	path, exists, err = FindPath()
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.UI.Language)
}

// =============================================================================
// GLOBAL
// =============================================================================

// TestConfig_ConcurrentAccess tests that Global and SetGlobal can be called
// concurrently. Run with -race.
func TestConfig_ConcurrentAccess(t *testing.T) {
	isolate(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

func TestConfig_SetGlobalBeforeFirstUse(t *testing.T) {
	isolate(t)
	custom := Default()
	custom.UI.Language = "en"
	SetGlobal(custom)
	assert.Same(t, custom, Global())
}

// =============================================================================
// WATCHER
// =============================================================================

func TestWatcher_Reload(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\nlanguage = \"it\"\n"), 0600))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.WithDebounce(10 * time.Millisecond)
	defer w.Close()

	got := make(chan *Config, 4)
	w.Subscribe(func(c *Config) { got <- c })
	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(path, []byte("[ui]\nlanguage = \"de\"\n"), 0600))

	select {
	case cfg := <-got:
		assert.Equal(t, "de", cfg.UI.Language)
		assert.Equal(t, "de", Global().UI.Language)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatcher_IgnoresInvalidAndOtherFiles(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0600))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.WithDebounce(10 * time.Millisecond)

	got := make(chan *Config, 4)
	w.Subscribe(func(c *Config) { got <- c })
	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0600))
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"neon\"\n"), 0600))

	select {
	case <-got:
		t.Fatal("unexpected reload")
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
