package agent

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// OverridesFile customizes agent templates and descriptions at startup.
// Only known agent names can be overridden; the agent set itself is fixed.
type OverridesFile struct {
	Agents []Override `yaml:"agents"`
}

// Override replaces the template and/or description of one agent.
type Override struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Template    string `yaml:"template,omitempty"`
}

// LoadOverrides reads a YAML overrides file and applies it to a copy of the
// given definitions. The result is validated the same way as the defaults:
// every non-greeting template must keep its query slot.
func LoadOverrides(path string, defs []Definition) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt overrides file %s: %w", path, err)
	}

	var file OverridesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prompt overrides YAML: %w", err)
	}

	out := append([]Definition(nil), defs...)
	byName := make(map[string]int, len(out))
	for i, def := range out {
		byName[def.Name] = i
	}

	for _, o := range file.Agents {
		idx, ok := byName[o.Name]
		if !ok {
			return nil, fmt.Errorf("prompt override for unknown agent %q", o.Name)
		}
		if o.Template != "" {
			if o.Name != GreetingAgent && !strings.Contains(o.Template, QuerySlot) {
				return nil, fmt.Errorf("override for agent %s: template is missing the %s slot", o.Name, QuerySlot)
			}
			out[idx].Template = o.Template
		}
		if o.Description != "" {
			out[idx].Description = o.Description
		}
	}
	return out, nil
}
