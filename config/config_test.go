package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puissancen/grid"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"PORT", "BOARD_WIDTH", "WIN_LENGTH", "LOG_LEVEL", "PARTY_TTL"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 7, cfg.BoardWidth)
	assert.Equal(t, 4, cfg.WinLength)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 2*time.Hour, cfg.PartyTTL)
}

func TestLoadEnvFileThenFlags(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BOARD_WIDTH=9\nWIN_LENGTH=5\nLOG_LEVEL=debug\n"), 0o600))
	// godotenv ne remplace pas une variable déjà présente, même vide
	for _, k := range []string{"BOARD_WIDTH", "WIN_LENGTH", "LOG_LEVEL"} {
		require.NoError(t, os.Unsetenv(k))
	}
	t.Cleanup(func() {
		for _, k := range []string{"BOARD_WIDTH", "WIN_LENGTH", "LOG_LEVEL"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := Load(path, []string{"-port", "9000", "-win", "6"})
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 9, cfg.BoardWidth)
	assert.Equal(t, 6, cfg.WinLength)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"), nil)
	require.NoError(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	_, err := Load("", []string{"-width", "0"})
	require.ErrorIs(t, err, grid.ErrInvalidConfiguration)

	_, err = Load("", []string{"-width", "16"})
	require.ErrorIs(t, err, grid.ErrInvalidConfiguration)

	_, err = Load("", []string{"-win", "8"})
	require.ErrorIs(t, err, grid.ErrInvalidConfiguration)

	t.Setenv("BOARD_WIDTH", "seven")
	_, err = Load("", nil)
	require.Error(t, err)
}
