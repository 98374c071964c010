package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleInput = `190: 10 19
3267: 81 40 27
83: 17 5
156: 15 6
7290: 6 8 6 15
161011: 16 10 13
192: 17 8 14
21037: 9 7 18 13
292: 11 6 16 20
`

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CALIBRATION_INPUT",
		"CALIBRATION_OPERATORS",
		"CALIBRATION_WORKERS",
		"CALIBRATION_PRUNING",
		"CALIBRATION_EXPLAIN",
		"CALIBRATION_PROGRESS_INTERVAL",
		"CALIBRATION_LOG_LEVEL",
		"CALIBRATION_LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(exampleInput), 0o600))
	return path
}

func TestRunPrintsTotal(t *testing.T) {
	clearEnv(t)
	path := writeInput(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "defaults", args: []string{path}, want: "Total result: 11387\n"},
		{name: "add and multiply only", args: []string{"--operators", "+,*", path}, want: "Total result: 3749\n"},
		{name: "exhaustive single worker", args: []string{"--no-prune", "--workers", "1", "--explain", path}, want: "Total result: 11387\n"},
		{name: "progress every millisecond", args: []string{"--progress-interval", "1ms", path}, want: "Total result: 11387\n"},
		{name: "progress disabled", args: []string{"--progress-interval", "0s", path}, want: "Total result: 11387\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			args := append([]string{"--log-level", "error"}, tc.args...)
			code := run(args, &stdout, &stderr)
			require.Equal(t, exitOK, code, "stderr: %s", stderr.String())
			assert.Equal(t, tc.want, stdout.String())
		})
	}
}

func TestRunReadsInputFromConfigFile(t *testing.T) {
	clearEnv(t)
	path := writeInput(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("input: "+path+"\nlog:\n  level: error\n"), 0o600))

	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", cfgPath}, &stdout, &stderr)
	require.Equal(t, exitOK, code, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "11387")
}

func TestRunFailsWhenInputMissing(t *testing.T) {
	clearEnv(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--log-level", "error", filepath.Join(t.TempDir(), "missing.txt")}, &stdout, &stderr)
	assert.Equal(t, exitFailure, code)
	assert.Zero(t, stdout.Len(), "no result line on failure")
}

func TestRunRejectsBadUsage(t *testing.T) {
	clearEnv(t)
	path := writeInput(t)

	cases := [][]string{
		{"--unknown-flag", path},
		{"--operators", "+,-", path},
		{"--log-format", "xml", path},
		{"--log-level", "chatty", path},
		{"--progress-interval", "soon", path},
	}
	for _, args := range cases {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, exitUsage, run(args, &stdout, &stderr), "args %v", args)
	}
}

func TestRunRejectsBadProgressIntervalFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CALIBRATION_PROGRESS_INTERVAL", "soon")

	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitUsage, run([]string{writeInput(t)}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "CALIBRATION_PROGRESS_INTERVAL")
}
