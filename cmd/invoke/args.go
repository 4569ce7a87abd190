package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// loadArgs builds the argument map out of an optional YAML file and name=value pairs, pairs override
// values from the file. Values of pairs are decoded as YAML scalars or flow sequences, so that
// "count=1" yields an int and "items=[1, 2]" yields a sequence.
func loadArgs(path string, pairs []string) (map[string]any, error) {
	args := map[string]any{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading arguments file: %w", err)
		}

		if err := yaml.Unmarshal(data, &args); err != nil {
			return nil, fmt.Errorf("decoding arguments file %s: %w", path, err)
		}

		if args == nil {
			args = map[string]any{}
		}
	}

	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid argument '%s', expected name=value", pair)
		}

		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("decoding argument '%s': %w", name, err)
		}

		args[name] = value
	}

	return args, nil
}
