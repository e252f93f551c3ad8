package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/workflow-sim/workflow-sim/sim"
)

func TestLoadPresets_RepositoryFileIsValid(t *testing.T) {
	pf, err := LoadPresets("../presets.yaml")
	require.NoError(t, err)

	require.NotEmpty(t, pf.Names())
	for _, name := range pf.Names() {
		opts, err := pf.Apply(name, sim.DefaultOptions())
		require.NoError(t, err, name)
		assert.NoError(t, opts.Validate(), "preset %s must produce valid options", name)
	}
}

func TestPresetFile_Apply_OverlaysOnlyGivenKeys(t *testing.T) {
	path := writeFile(t, "presets.yaml", `
version: "1"
presets:
  busy:
    description: busy line
    options:
      policy: kanban
      orders_per_hour: 20
`)
	pf, err := LoadPresets(path)
	require.NoError(t, err)

	base := sim.DefaultOptions()
	base.Seed = 99
	opts, err := pf.Apply("busy", base)

	require.NoError(t, err)
	assert.Equal(t, "kanban", opts.Policy)
	assert.Equal(t, 20.0, opts.OrdersPerHour)
	assert.Equal(t, int64(99), opts.Seed, "keys absent from the preset keep the base value")
	assert.Equal(t, base.Capacity, opts.Capacity)
}

func TestPresetFile_Apply_UnknownPreset(t *testing.T) {
	pf := &PresetFile{Presets: map[string]Preset{}}

	_, err := pf.Apply("nope", sim.DefaultOptions())

	assert.ErrorContains(t, err, "unknown preset")
}

func TestLoadPresets_StrictParsing(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown top-level key", "version: \"1\"\nextras: 1\npresets: {}\n"},
		{"unknown preset field", "presets:\n  a:\n    descr: typo\n"},
		{"unknown option key", "presets:\n  a:\n    options:\n      orders_per_minute: 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPresets(writeFile(t, "presets.yaml", tt.content))
			assert.Error(t, err)
		})
	}
}

func TestRenderPresets_ListsNamesInOrder(t *testing.T) {
	pf, err := LoadPresets("../presets.yaml")
	require.NoError(t, err)

	out := renderPresets(pf)

	assert.Contains(t, out, "kanban")
	assert.Contains(t, out, "policy: manager")
	assert.Less(t, strings.Index(out, "breakdowns"), strings.Index(out, "passive"))
}
