package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspbb/tsplib"
)

const squareTSP = `NAME : square4
TYPE : TSP
DIMENSION : 4
EDGE_WEIGHT_TYPE : EUC_2D
NODE_COORD_SECTION
1 0 0
2 1 0
3 1 1
4 0 1
EOF
`

func writeInstance(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "square4.tsp")
	require.NoError(t, os.WriteFile(path, []byte(squareTSP), 0o600))

	return path
}

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd := createRootCommand(context.Background(), &Input{}, "1.2.3")
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestSolve_TourFormat(t *testing.T) {
	stdout, stderr, err := run(t, "solve", writeInstance(t))
	require.NoError(t, err)

	assert.Contains(t, stdout, "NAME : square4.tour")
	assert.Contains(t, stdout, "COMMENT : Length 4")
	assert.Contains(t, stdout, "TOUR_SECTION\n1\n2\n3\n4\n-1\nEOF\n")
	assert.Contains(t, stderr, "optimal tour found")
}

func TestSolve_JSONToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.json")
	_, _, err := run(t, "solve", writeInstance(t), "--format", "json", "-o", out, "--workers", "2", "--start", "3", "--canonical")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var sol tsplib.Solution
	require.NoError(t, json.Unmarshal(data, &sol))
	assert.Equal(t, 4.0, sol.Cost)
	assert.True(t, sol.Optimal)
	assert.Equal(t, 1, sol.Tour[0], "canonical tours start at the lowest ID")
}

func TestSolve_VerboseJSONLogs(t *testing.T) {
	_, stderr, err := run(t, "solve", writeInstance(t), "-v", "--log-format", "json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	require.NotEmpty(t, lines)
	var entry map[string]any
	for _, line := range lines {
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
	}
	assert.Contains(t, stderr, `"level":"debug"`)
}

func TestSolve_ConfigFileAndFlagPrecedence(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "tspbb.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  format: json\n"), 0o600))

	stdout, _, err := run(t, "solve", writeInstance(t), "--config", cfgPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "{"))

	stdout, _, err = run(t, "solve", writeInstance(t), "--config", cfgPath, "--format", "tour")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "NAME : "))
}

func TestSolve_EnvFile(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "tspbb.env")
	require.NoError(t, os.WriteFile(envPath, []byte("TSPBB_LOG_LEVEL=error\n"), 0o600))

	stdout, stderr, err := run(t, "solve", writeInstance(t), "--env-file", envPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "COMMENT : Length 4")
	assert.NotContains(t, stderr, "optimal tour found")
}

func TestSolve_Errors(t *testing.T) {
	_, _, err := run(t, "solve")
	require.Error(t, err)

	_, _, err = run(t, "solve", filepath.Join(t.TempDir(), "missing.tsp"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = run(t, "solve", writeInstance(t), "--format", "svg")
	require.Error(t, err)

	_, _, err = run(t, "solve", writeInstance(t), "--start", "9")
	require.Error(t, err)
}

func TestBounds(t *testing.T) {
	stdout, _, err := run(t, "bounds", writeInstance(t))
	require.NoError(t, err)

	assert.Contains(t, stdout, "square4 (4 cities, EUC_2D)")
	assert.Contains(t, stdout, "city 1: first 2 (1), second 4 (1)")
	assert.Contains(t, stdout, "root bound: 4")
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tspbb version 1.2.3\n", stdout)
}
