package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
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

func TestClassifyStorageError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"permission denied", fmt.Errorf("write: %w", os.ErrPermission), true},
		{"missing directory", fmt.Errorf("open: %w", os.ErrNotExist), true},
		{"path error", &os.PathError{Op: "open", Path: "/media/x", Err: errors.New("boom")}, true},
		{"read-only filesystem", errors.New("mkdir /media: read-only file system"), true},
		{"disk full", errors.New("write /media/x: no space left on device"), true},
		{"payload problem", errors.New("unsupported image format"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyStorageError(tt.err))
		})
	}
}

func TestFileStem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.png", "photo"},
		{"dir/sub/My Photo (1).jpeg", "MyPhoto1"},
		{".hidden", "hidden"},
		{"", ""},
		{"no-extension", "no-extension"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fileStem(tt.in), "input %q", tt.in)
	}
}

func TestUploadWithoutBasePath(t *testing.T) {
	u := NewUploader("", "http://localhost:3001", "/uploads", testLogger(t))

	_, err := u.Upload("photo.png", "data:image/png;base64,AAAA")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestUploadSVG(t *testing.T) {
	dir := t.TempDir()
	u := NewUploader(dir, "http://localhost:3001", "/uploads", testLogger(t))

	svg := base64.StdEncoding.EncodeToString([]byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`))
	url, err := u.Upload("logo.svg", "data:image/svg+xml;base64,"+svg)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:3001/uploads/logo_"), "got %q", url)
	assert.True(t, strings.HasSuffix(url, ".svg"), "got %q", url)

	entries, err := os.ReadDir(dir + "/uploads")
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestUploadUnreadableRootIsStorageUnavailable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	u := NewUploader(dir, "http://localhost:3001", "/uploads", testLogger(t))

	svg := base64.StdEncoding.EncodeToString([]byte(`<svg/>`))
	_, err := u.Upload("logo.svg", "data:image/svg+xml;base64,"+svg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
