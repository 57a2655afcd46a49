package provision

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed policy.yaml
var policyYAML []byte

// Policy maps step IDs to failure severities. It is loaded from the
// embedded policy.yaml so the fatal/advisory classification stays a
// reviewable table instead of being inferred from control flow.
type Policy struct {
	severities map[string]Severity
}

type policyFile struct {
	Steps []struct {
		ID       string `yaml:"id"`
		Severity string `yaml:"severity"`
	} `yaml:"steps"`
}

// DefaultPolicy parses the embedded policy table.
func DefaultPolicy() (*Policy, error) {
	return ParsePolicy(policyYAML)
}

// ParsePolicy parses a policy table from YAML.
func ParsePolicy(data []byte) (*Policy, error) {
	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse policy: %w", err)
	}

	severities := make(map[string]Severity, len(file.Steps))
	for _, entry := range file.Steps {
		if entry.ID == "" {
			return nil, fmt.Errorf("policy entry with empty step id")
		}
		if _, exists := severities[entry.ID]; exists {
			return nil, fmt.Errorf("duplicate policy entry for step %q", entry.ID)
		}
		switch entry.Severity {
		case "fatal":
			severities[entry.ID] = SeverityFatal
		case "advisory":
			severities[entry.ID] = SeverityAdvisory
		default:
			return nil, fmt.Errorf("step %q has unknown severity %q", entry.ID, entry.Severity)
		}
	}

	return &Policy{severities: severities}, nil
}

// SeverityFor returns the severity for a step ID. Every step a pipeline
// runs must have an entry; a missing one is a programming error surfaced
// at run time.
func (p *Policy) SeverityFor(stepID string) (Severity, error) {
	severity, ok := p.severities[stepID]
	if !ok {
		return SeverityFatal, fmt.Errorf("no policy entry for step %q", stepID)
	}
	return severity, nil
}
