package lang

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overlay files let a project add languages or replace builtin descriptors
// without recompiling:
//
//	languages:
//	  - name: elixir
//	    extensions: [".ex", ".exs"]
//	    name_kinds: ["identifier", "alias"]
//	    kinds:
//	      - {kind: "call", category: "function"}
//
// Overlay descriptors pass the same validation as builtins.

type overlayFile struct {
	Languages []*Descriptor `yaml:"languages"`
}

// LoadOverlay reads a YAML overlay and applies its descriptors to the
// registry, replacing same-named entries. Returns the number of descriptors
// applied. Validation failures surface as *ConfigError.
func LoadOverlay(r *Registry, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading overlay: %w", err)
	}
	var of overlayFile
	if err := yaml.Unmarshal(data, &of); err != nil {
		return 0, fmt.Errorf("parsing overlay %s: %w", path, err)
	}
	if len(of.Languages) == 0 {
		return 0, nil
	}
	if err := r.Apply(of.Languages...); err != nil {
		return 0, err
	}
	return len(of.Languages), nil
}
