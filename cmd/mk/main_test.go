package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	taskfile := `version: "1"
targets:
  greet:
    run:
      - echo hello
  broken:
    run:
      - exit 7
      - echo unreachable
`

	tests := []struct {
		name         string
		args         []string
		expectedExit int
	}{
		{
			name:         "succeeding target",
			args:         []string{"mk", "-q", "greet"},
			expectedExit: 0,
		},
		{
			name:         "failing command propagates its exit status",
			args:         []string{"mk", "-q", "broken"},
			expectedExit: 7,
		},
		{
			name:         "unknown target",
			args:         []string{"mk", "-q", "bogus"},
			expectedExit: 2,
		},
		{
			name:         "no targets shows help",
			args:         []string{"mk"},
			expectedExit: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			require.NoError(t, os.WriteFile(tmpDir+"/mk.yaml", []byte(taskfile), 0o600))

			originalWd, err := os.Getwd()
			require.NoError(t, err)
			require.NoError(t, os.Chdir(tmpDir))
			defer func() {
				_ = os.Chdir(originalWd)
			}()

			os.Args = tt.args
			assert.Equal(t, tt.expectedExit, run())
		})
	}
}
