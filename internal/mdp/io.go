package mdp

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads and parses a Spec from a YAML file on disk. It does not
// validate; call Validate or Compile explicitly.
func LoadYAML(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrIO{Path: path, Err: err}
	}
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, &ErrYAML{Path: path, Err: err}
	}
	return &spec, nil
}

// CompileYAML reads, parses, validates, and compiles a Spec from a YAML
// file on disk in one step.
func CompileYAML(path string) (*Compiled, error) {
	spec, err := LoadYAML(path)
	if err != nil {
		return nil, err
	}
	return spec.Compile()
}

// SaveYAML serializes spec and writes it to path.
func SaveYAML(path string, spec *Spec) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return &ErrYAML{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &ErrIO{Path: path, Err: err}
	}
	return nil
}
