package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"phasepositions/internal/orbits"
)

// loadState reads an initial body state from a YAML file. Bodies or fields
// missing from the file keep their defaults; out of range values are
// corrected later by the scene.
func loadState(path string) (orbits.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return orbits.State{}, fmt.Errorf("read state: %w", err)
	}
	st := orbits.DefaultState()
	if err := yaml.Unmarshal(data, &st); err != nil {
		return orbits.State{}, fmt.Errorf("parse state %s: %w", path, err)
	}
	return st, nil
}
