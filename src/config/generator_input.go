package config

import (
	"fmt"
	"os"

	"github.com/go-yaml/yaml"
)

// GeneratorInput is the YAML document the batch input generator consumes:
// one lift configuration plus the passenger flows to expand into hall calls.
type GeneratorInput struct {
	Lift  LiftConfig      `yaml:"lift"`
	Flows []PassengerFlow `yaml:"flows"`
}

// LoadGeneratorInput reads and decodes a generator input file.
func LoadGeneratorInput(path string) (GeneratorInput, error) {
	var in GeneratorInput
	file, err := os.Open(path)
	if err != nil {
		return in, fmt.Errorf("open generator input: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&in); err != nil {
		return in, fmt.Errorf("decode generator input %s: %w", path, err)
	}
	return in, nil
}
