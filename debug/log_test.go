package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogDisabledIsNoop(t *testing.T) {
	Disable()
	assert.False(t, Enabled())
	Log("test", "nothing %d", 1)
}

func TestLogWritesCategoryLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "debug.log")
	require.NoError(t, Enable(path))
	t.Cleanup(Disable)
	assert.True(t, Enabled())

	Log("translate", "unmapped key %s", "f1")
	for i := 0; i < 4; i++ {
		LogEvery(2, "input", "tick")
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "=== Debug logging started ===")
	assert.Contains(t, lines[1], "translate  unmapped key f1")
	assert.Contains(t, lines[2], "tick (every 2, count=2)")
	assert.Contains(t, lines[3], "tick (every 2, count=4)")
}
