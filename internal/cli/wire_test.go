package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/docketflow/internal/dataset"
	"github.com/alexanderramin/docketflow/internal/testutil"
)

type wireEnv struct {
	dir     string
	dataset string
	config  string
}

func newWireEnv(t *testing.T, datasetBody, extraConfig string) wireEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	env := wireEnv{
		dir:     dir,
		dataset: filepath.Join(dir, "workflow.yaml"),
		config:  filepath.Join(dir, "config.yaml"),
	}
	require.NoError(t, os.WriteFile(env.dataset, []byte(datasetBody), 0o644))
	cfg := "dataset: " + env.dataset + "\ndb: \":memory:\"\nlog_level: error\n" + extraConfig
	require.NoError(t, os.WriteFile(env.config, []byte(cfg), 0o644))
	return env
}

func TestWire_BuildsServicesFromConfig(t *testing.T) {
	env := newWireEnv(t, testutil.SampleYAML, "hourly_rate: 150\n")

	app := &App{}
	t.Cleanup(func() { app.Close() })
	require.NoError(t, app.Wire(context.Background(), WireOptions{ConfigPath: env.config}))

	assert.Equal(t, env.dataset, app.DatasetPath)
	assert.Equal(t, "sample", app.Explorer.Model().Name())
	require.NotNil(t, app.Scenarios)
	require.NotNil(t, app.Logger)

	rate, err := app.Explorer.HourlyRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 150.0, rate)
}

func TestWire_DatasetFlagOverridesConfig(t *testing.T) {
	env := newWireEnv(t, testutil.SampleYAML, "")
	other := filepath.Join(env.dir, "other.yaml")
	require.NoError(t, os.WriteFile(other,
		[]byte(strings.Replace(testutil.SampleYAML, "name: sample", "name: other", 1)), 0o644))

	app := &App{}
	t.Cleanup(func() { app.Close() })
	out, err := executeCmd(t, app, "--config", env.config, "--dataset", other, "nodes")
	require.NoError(t, err)
	assert.Contains(t, out, "OTHER")
	assert.Equal(t, other, app.DatasetPath)
}

func TestWire_StrictRejectsBrokenDataset(t *testing.T) {
	broken := strings.Replace(testutil.SampleYAML,
		"child_node_ids: [5, 6]", "child_node_ids: [5, 6, 42]", 1)
	env := newWireEnv(t, broken, "strict: true\n")

	app := &App{}
	t.Cleanup(func() { app.Close() })
	_, err := executeCmd(t, app, "--config", env.config, "nodes")
	assert.ErrorIs(t, err, dataset.ErrInvalidDataset)
}

func TestWire_ValidateSkipsDatabase(t *testing.T) {
	env := newWireEnv(t, testutil.SampleYAML, "")

	app := &App{}
	out, err := executeCmd(t, app, "--config", env.config, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "no issues found")
	assert.Nil(t, app.Explorer)
	assert.Nil(t, app.db)
}
