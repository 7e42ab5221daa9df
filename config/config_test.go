package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "Pollywog", cfg.Window.Title)
	assert.Equal(t, 60, cfg.Simulation.TPS)
	assert.Equal(t, "hello_world.level.json", cfg.Game.Level)
	assert.Equal(t, []string{"E", "Slash"}, cfg.Input.Grapple)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "partial override keeps defaults",
			input: `
[simulation]
tps = 120

[debug]
physics = true
metrics_addr = ":9090"
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 120, cfg.Simulation.TPS)
				assert.True(t, cfg.Debug.Physics)
				assert.Equal(t, ":9090", cfg.Debug.MetricsAddr)
				assert.Equal(t, 1280, cfg.Window.Width)
			},
		},
		{
			name: "rebinding",
			input: `
[input]
jump = ["K"]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"K"}, cfg.Input.Jump)
				assert.Equal(t, []string{"ArrowLeft", "A"}, cfg.Input.Left)
			},
		},
		{name: "bad tps", input: "[simulation]\ntps = 0\n", wantErr: true},
		{name: "bad window", input: "[window]\nwidth = -1\n", wantErr: true},
		{name: "bad format", input: "[logging]\nformat = \"xml\"\n", wantErr: true},
		{name: "empty binding", input: "[input]\ngrapple = []\n", wantErr: true},
		{name: "malformed", input: "[window\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(dir, "pollywog.toml")
	require.NoError(t, os.WriteFile(path, []byte("[game]\nskip_start_screen = true\n"), 0o644))
	cfg, err = LoadOrDefault(path)
	require.NoError(t, err)
	assert.True(t, cfg.Game.SkipStartScreen)
}
