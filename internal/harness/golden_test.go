package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGoldenScenarios runs every scenario fixture and compares the final
// store snapshot against its golden file.
//
// Regenerate goldens with: go test ./internal/harness -update
func TestGoldenScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "scenario fixtures should exist")

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			sc, err := LoadScenario(path)
			require.NoError(t, err)
			require.NoError(t, RunWithGolden(t, sc))
		})
	}
}
