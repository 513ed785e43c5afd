package root

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/valouniversaire/internal/game/sim"
	"github.com/cory-johannsen/valouniversaire/internal/game/tuning"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	catalogPath = ""
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestPrices(t *testing.T) {
	out, _, err := run(t, "prices", "-n", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "15 19 25", "axe at levels 1..3 with multiplier 1.3")
	assert.Contains(t, out, "25 40 64", "ptitLu with multiplier 1.6")
	assert.Contains(t, out, "prestigeUnlock")
}

func TestPrices_RejectsZeroLevels(t *testing.T) {
	_, _, err := run(t, "prices", "-n", "0")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, tuning.DefaultYAML(), 0o644))
	out, _, err := run(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "420")

	bad := filepath.Join(dir, "bad.yaml")
	data := strings.Replace(string(tuning.DefaultYAML()), "critical_chance: 0.1", "critical_chance: 1.5", 1)
	require.NoError(t, os.WriteFile(bad, []byte(data), 0o644))
	_, errOut, err := run(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, errOut, "tree.critical_chance")
}

func TestSimulate_WritesTrace(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "quick.yaml")
	data := strings.Replace(string(tuning.DefaultYAML()), "target_beers: 420", "target_beers: 2", 1)
	require.NoError(t, os.WriteFile(catalog, []byte(data), 0o644))
	trace := filepath.Join(dir, "trace.jsonl.zst")

	out, _, err := run(t, "simulate", "--catalog", catalog, "--runs", "2", "--max", "1h", "--trace", trace)
	require.NoError(t, err)
	assert.Contains(t, out, "Won")
	assert.Contains(t, out, "2/2")

	f, err := os.Open(trace)
	require.NoError(t, err)
	defer f.Close()
	entries, err := sim.ReadTrace(f)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
