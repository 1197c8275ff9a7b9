package prof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPU:   filepath.Join(dir, "cpu.pprof"),
		Mem:   filepath.Join(dir, "mem.pprof"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	require.True(t, cfg.Enabled())

	s, err := Start(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())

	for _, p := range []string{cfg.CPU, cfg.Mem, cfg.Trace} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, info.Size(), p)
	}
}

func TestSessionDisabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	s, err := Start(Config{})
	require.NoError(t, err)
	assert.NoError(t, s.Stop())

	var nilSession *Session
	assert.NoError(t, nilSession.Stop())
}

func TestStartFailsOnBadPath(t *testing.T) {
	_, err := Start(Config{CPU: filepath.Join(t.TempDir(), "missing", "cpu.pprof")})
	assert.Error(t, err)
}
