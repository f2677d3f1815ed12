package parsers

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/username/tradejournal/backend/src/logger"
	"github.com/username/tradejournal/backend/src/parsers/mapping"
)

// Overrides are extra header aliases per vendor source and canonical field.
type Overrides map[string]map[mapping.Field][]string

// ParseOverrides reads a YAML document shaped like:
//
//	matchtrader:
//	  instrument: ["Instrument name"]
//	  close_time: ["Closed at"]
func ParseOverrides(data []byte) (Overrides, error) {
	var raw map[string]map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode alias overrides: %w", err)
	}
	out := make(Overrides, len(raw))
	for source, fields := range raw {
		key := normalizeSource(source)
		out[key] = make(map[mapping.Field][]string, len(fields))
		for name, aliases := range fields {
			field, ok := mapping.ParseField(name)
			if !ok {
				return nil, fmt.Errorf("alias overrides: unknown field %q for source %q", name, source)
			}
			for _, a := range aliases {
				if strings.TrimSpace(a) != "" {
					out[key][field] = append(out[key][field], a)
				}
			}
		}
	}
	return out, nil
}

// LoadOverrides reads the override file at path. An empty path means no overrides.
func LoadOverrides(path string) (Overrides, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias overrides '%s': %w", path, err)
	}
	overrides, err := ParseOverrides(data)
	if err != nil {
		return nil, err
	}
	logger.L.Info("Loaded header alias overrides", "path", path, "sources", len(overrides))
	return overrides, nil
}
