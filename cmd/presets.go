package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	sim "github.com/workflow-sim/workflow-sim/sim"
)

// defaultPresetsPath is where presets are read from unless --presets is given.
var defaultPresetsPath = "presets.yaml"

// PresetFile represents the full presets.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type PresetFile struct {
	Version string            `yaml:"version"`
	Presets map[string]Preset `yaml:"presets"`
}

// Preset is a named partial set of options. Options is kept as a raw node
// so that it can be decoded strictly on top of any base.
type Preset struct {
	Description string    `yaml:"description"`
	Options     yaml.Node `yaml:"options"`
}

// LoadPresets reads and strictly parses a presets file.
func LoadPresets(path string) (*PresetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets file: %w", err)
	}

	// Parse YAML with strict field checking: typos must cause errors
	var pf PresetFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&pf); err != nil {
		return nil, fmt.Errorf("parsing presets file %s: %w", path, err)
	}
	for name, p := range pf.Presets {
		if _, err := p.apply(sim.DefaultOptions()); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
	}
	return &pf, nil
}

// Names returns the preset names in sorted order.
func (pf *PresetFile) Names() []string {
	names := make([]string, 0, len(pf.Presets))
	for name := range pf.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply overlays the named preset onto base.
func (pf *PresetFile) Apply(name string, base sim.Options) (sim.Options, error) {
	p, ok := pf.Presets[name]
	if !ok {
		return base, fmt.Errorf("unknown preset %q (have %v)", name, pf.Names())
	}
	return p.apply(base)
}

func (p Preset) apply(base sim.Options) (sim.Options, error) {
	if p.Options.Kind == 0 {
		return base, nil
	}
	data, err := yaml.Marshal(&p.Options)
	if err != nil {
		return base, err
	}
	out := base
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&out); err != nil {
		return base, err
	}
	return out, nil
}

// renderPresets formats every preset with its description and overrides.
func renderPresets(pf *PresetFile) string {
	var blocks []string
	for _, name := range pf.Names() {
		p := pf.Presets[name]
		lines := []string{headerStyle.Render(name) + "  " + p.Description}
		if p.Options.Kind != 0 {
			data, err := yaml.Marshal(&p.Options)
			if err == nil {
				for _, l := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
					lines = append(lines, "    "+l)
				}
			}
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}
