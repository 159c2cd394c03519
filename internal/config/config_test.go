package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okhv/focal/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 5, cfg.Session.NudgeIntervalMinutes)
	assert.Equal(t, 60, cfg.Session.RegulationIntervalSeconds)
	assert.Equal(t, 2, cfg.Session.HardNudgeDriftThreshold)
	assert.Equal(t, 5, cfg.Session.SoftNudgeTimeoutSeconds)
	assert.NotEmpty(t, cfg.Regulation.Rules)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default().Session, cfg.Session)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logging:
  level: debug
session:
  nudge_interval_minutes: 10
regulation:
  rules:
    - type: meal
      message: "eat something"
      every_minutes: 240
      mandatory_delay_seconds: 120
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Session.NudgeIntervalMinutes)
	// Untouched keys keep their defaults.
	assert.Equal(t, 60, cfg.Session.RegulationIntervalSeconds)

	require.Len(t, cfg.Regulation.Rules, 1)
	assert.Equal(t, "meal", cfg.Regulation.Rules[0].Type)
	assert.Equal(t, 120, cfg.Regulation.Rules[0].MandatoryDelaySeconds)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o600))

	t.Setenv("FOCAL_LOGGING_LEVEL", "error")
	t.Setenv("FOCAL_SESSION_NUDGE_INTERVAL_MINUTES", "7")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, 7, cfg.Session.NudgeIntervalMinutes)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad level", "logging:\n  level: loud\n"},
		{"bad format", "logging:\n  format: xml\n"},
		{"bad rule type", "regulation:\n  rules:\n    - type: nap\n      message: zzz\n      every_minutes: 10\n"},
		{"zero interval rule", "regulation:\n  rules:\n    - type: rest\n      message: rest\n      every_minutes: 0\n"},
		{"empty rule message", "regulation:\n  rules:\n    - type: rest\n      message: \"\"\n      every_minutes: 10\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))
			_, err := config.Load(path)
			assert.Error(t, err)
		})
	}
}
