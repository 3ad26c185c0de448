package database

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
	"github.com/dzakyfr/portfolio-go/pkg/config"
)

func testLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: false,
		DefaultLevel:    slog.LevelError + 4,
		ChannelLevels:   map[logging.Channel]slog.Level{},
	})
	require.NoError(t, err)
	return logger
}

func TestNewConnectionAppliesPoolSettings(t *testing.T) {
	db, err := NewConnection("sqlite3", filepath.Join(t.TempDir(), "pool.db"), testLogger(t))
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, config.DBMaxOpenConns, db.Stats().MaxOpenConnections)
}

func TestNewConnectionRejectsUnknownDriver(t *testing.T) {
	_, err := NewConnection("no-such-driver", "irrelevant", testLogger(t))
	assert.Error(t, err)
}
