package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n0troot/WheresBenny/internal/config"
	"github.com/n0troot/WheresBenny/internal/session"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Host:          "127.0.0.1",
		Port:          "0",
		AssetDir:      filepath.Join(t.TempDir(), "assets"),
		SessionTTL:    config.DefaultSessionTTL,
		SweepInterval: config.DefaultSweepInterval,
	}
}

func TestNewBuildsIsolatedInstances(t *testing.T) {
	a, err := New(testConfig(t))
	require.NoError(t, err)
	b, err := New(testConfig(t))
	require.NoError(t, err)

	// No shared state: a session in one instance is invisible to the other.
	id, _, err := a.Manager().CreateSession(
		[]byte("\x89PNG\r\n\x1a\nx"),
		session.Rect{X: 1, Y: 1, Width: 2, Height: 2},
		"chan", "user", "creator", nil,
	)
	require.NoError(t, err)

	_, err = a.Manager().Get(id)
	assert.NoError(t, err)
	_, err = b.Manager().Get(id)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestShutdownWithoutRun(t *testing.T) {
	a, err := New(testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, a.Shutdown(ctx))
}
