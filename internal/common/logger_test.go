package common

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogOutputs(t *testing.T) {
	tests := []struct {
		name        string
		outputs     []string
		wantFile    bool
		wantConsole bool
	}{
		{"none", nil, false, false},
		{"default", []string{"stdout", "file"}, true, true},
		{"console synonym", []string{"console"}, false, true},
		{"file only", []string{"file"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toFile, toConsole := logOutputs(tt.outputs)
			assert.Equal(t, tt.wantFile, toFile)
			assert.Equal(t, tt.wantConsole, toConsole)
		})
	}
}

func TestLogDir_CreatesConfiguredDirectory(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "logs")

	got, err := logDir(want)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.DirExists(t, want)
}

func TestInitLogger_SetsGlobal(t *testing.T) {
	config := NewDefaultConfig()
	config.Logging.Output = []string{"file"}
	config.Logging.Dir = t.TempDir()

	logger := InitLogger(config)
	require.NotNil(t, logger)
	assert.Same(t, logger, GetLogger())
}
