package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v3/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1500*time.Millisecond, cfg.Scrollbar.DormantDelay())
	assert.Equal(t, 600*time.Millisecond, cfg.Scrollbar.HideDuration())
	assert.Equal(t, 150*time.Millisecond, cfg.Scrollbar.ScrollSettle())
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[scrollbar]
thumb_thickness = 2
dormant_delay_ms = 800
drag_color = "#00ff00"

[keybinds]
jump_end = ["E"]

[help]
border = "double"
`))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Scrollbar.ThumbThickness)
	assert.Equal(t, 800*time.Millisecond, cfg.Scrollbar.DormantDelay())
	assert.Equal(t, 600, cfg.Scrollbar.HideDurationMs)
	assert.Equal(t, []string{"E"}, cfg.Keybinds.JumpEnd)
	assert.Equal(t, []string{"home", "g"}, cfg.Keybinds.JumpStart)
	assert.Equal(t, "double", cfg.Help.Border)

	_, drag, _ := cfg.Scrollbar.Colors()
	assert.Equal(t, color.NewRGBColor(0, 255, 0), drag)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte(`[scrollbar]
thumb_thickness = 0`))
	assert.ErrorContains(t, err, "thumb_thickness")

	_, err = Parse([]byte(`[scrollbar]
thumb_color = "grey"`))
	assert.ErrorContains(t, err, "thumb_color")

	_, err = Parse([]byte(`[help]
border = "dotted"`))
	assert.ErrorContains(t, err, "help.border")

	_, err = Parse([]byte(`[scrollbar`))
	assert.ErrorContains(t, err, "decode")
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadUsesXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(dir, "lazybar", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[scrollbar]\nsmall_threshold = 10\n"), 0o644))

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Scrollbar.SmallThreshold)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.Scrollbar.ShowTrack = true
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
