package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const scenarioYAML = `
patches: 2
dt: 0.0027397260273972603
delays: {egg: 2, fledgling: 3}
mortality: {adult: 0.2}
maturationRate: 1
capacity: {constant: [500, 500], horizon: 10}
forcing: {kB: 5}
initial:
  - {stage: adult, patch: 0, value: 100}
  - {stage: fledgling, slot: 2, patch: 1, value: 7}
`

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0o644))

	return path
}

func TestRunSingle(t *testing.T) {
	t.Parallel()

	var out, logs bytes.Buffer
	err := run(context.Background(), []string{"-config", writeScenario(t), "-steps", "4", "-v"}, &out, &logs)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6) // header, initial state, four steps
	require.True(t, strings.HasPrefix(lines[0], "step\ttime\tegg"))
	require.Len(t, strings.Split(lines[1], "\t"), 12)
	require.True(t, strings.HasPrefix(lines[5], "4\t"))

	require.Contains(t, logs.String(), "birdsim: scenario loaded")
	require.Contains(t, logs.String(), "bird: step")
	require.Contains(t, logs.String(), "birdsim: run finished")
}

func TestRunReplicates(t *testing.T) {
	t.Parallel()

	var out, logs bytes.Buffer
	err := run(context.Background(), []string{"-config", writeScenario(t), "-replicates", "3", "-kb-spread", "0.5"}, &out, &logs)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 12) // header plus steps 0..10
	require.Equal(t, "step\ttime\tmean_population", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "0\t0\t107"))
	require.Contains(t, logs.String(), "birdsim: ensemble finished")
}

func TestRunForcingReport(t *testing.T) {
	t.Parallel()

	var out, logs bytes.Buffer
	err := run(context.Background(), []string{"-config", writeScenario(t), "-steps", "3", "-forcing"}, &out, &logs)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	require.Equal(t, "step\ttime\trate", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "0\t0\t"))
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	var out, logs bytes.Buffer
	require.Error(t, run(context.Background(), nil, &out, &logs))
	require.Error(t, run(context.Background(), []string{"-config", "nope.yaml"}, &out, &logs))
	require.Error(t, run(context.Background(), []string{"-config", writeScenario(t), "-replicates", "0"}, &out, &logs))

	out.Reset()
	err := run(context.Background(), []string{"-config", writeScenario(t), "-steps", "11"}, &out, &logs)
	require.ErrorContains(t, err, "exceeds the carrying-capacity horizon 10")
	require.Empty(t, out.String())
}
