package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/workflow-sim/workflow-sim/sim"
)

func newOptionFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	registerOptionFlags(fs, sim.DefaultOptions())
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir on Go < 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}

func TestLoadOptions_DefaultsOnly(t *testing.T) {
	// GIVEN no config file in the working directory
	chdir(t, t.TempDir())

	opts, err := loadOptions(configSource{Base: sim.DefaultOptions(), Flags: newOptionFlags(t)})

	require.NoError(t, err)
	assert.Equal(t, sim.DefaultOptions(), opts)
}

func TestLoadOptions_Layering(t *testing.T) {
	// GIVEN a config file, an env override and a flag override
	cfg := writeFile(t, "sim.yaml", `
capacity: 8
policy: kanban
orders_per_hour: 12
wip_limit: 4
`)
	t.Setenv("WORKFLOWSIM_ORDERS_PER_HOUR", "15")
	t.Setenv("WORKFLOWSIM_WIP_LIMIT", "6")
	flags := newOptionFlags(t, "--wip-limit=9", "--days=2")

	// WHEN options are loaded
	opts, err := loadOptions(configSource{ConfigFile: cfg, Base: sim.DefaultOptions(), Flags: flags})
	require.NoError(t, err)

	// THEN each layer wins over the ones below it
	assert.Equal(t, 8, opts.Capacity, "config file over defaults")
	assert.Equal(t, "kanban", opts.Policy, "config file over defaults")
	assert.Equal(t, 15.0, opts.OrdersPerHour, "env over config file")
	assert.Equal(t, 9, opts.WipLimit, "flag over env")
	assert.Equal(t, 2.0, opts.TotalSimulationTimeDays, "flag over defaults")
	assert.Equal(t, sim.DefaultOptions().ReactionTime, opts.ReactionTime, "untouched keys keep defaults")
}

func TestLoadOptions_BaseComesFromPreset(t *testing.T) {
	chdir(t, t.TempDir())
	base := sim.DefaultOptions()
	base.Policy = sim.PolicyManager
	base.ManagersPerfection = 0.5

	opts, err := loadOptions(configSource{Base: base, Flags: newOptionFlags(t, "--managers-perfection=2")})

	require.NoError(t, err)
	assert.Equal(t, sim.PolicyManager, opts.Policy)
	assert.Equal(t, 2.0, opts.ManagersPerfection)
}

func TestLoadOptions_WorkingDirectoryConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "workflow-sim.yaml"), []byte("capacity: 12\n"), 0o644))
	chdir(t, dir)

	opts, err := loadOptions(configSource{Base: sim.DefaultOptions()})

	require.NoError(t, err)
	assert.Equal(t, 12, opts.Capacity)
}

func TestLoadOptions_MissingExplicitConfigFails(t *testing.T) {
	_, err := loadOptions(configSource{
		ConfigFile: filepath.Join(t.TempDir(), "missing.yaml"),
		Base:       sim.DefaultOptions(),
	})

	assert.Error(t, err)
}

func TestOptionFlags_CoverEveryKey(t *testing.T) {
	fs := newOptionFlags(t)
	for flag := range optionFlags {
		assert.NotNil(t, fs.Lookup(flag), "flag %s is not registered", flag)
	}
}
