package webpage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jaspreet-dot-casa/bootstrap/pkg/imds"
)

// TemplateVars holds all variables for template substitution.
type TemplateVars struct {
	HOSTNAME          string
	INSTANCE_ID       string
	INSTANCE_TYPE     string
	AVAILABILITY_ZONE string
	PUBLIC_HOSTNAME   string
	GENERATED_AT      string
}

// VarsFromIdentity converts an instance identity into template variables,
// stamping the render time.
func VarsFromIdentity(id imds.Identity, now time.Time) *TemplateVars {
	return &TemplateVars{
		HOSTNAME:          id.PublicHostname,
		INSTANCE_ID:       id.InstanceID,
		INSTANCE_TYPE:     id.InstanceType,
		AVAILABILITY_ZONE: id.AvailabilityZone,
		PUBLIC_HOSTNAME:   id.PublicHostname,
		GENERATED_AT:      now.UTC().Format(time.RFC1123),
	}
}

// Render substitutes vars into the template and returns the document.
func Render(template string, vars *TemplateVars) string {
	varMap := map[string]string{
		"HOSTNAME":          vars.HOSTNAME,
		"INSTANCE_ID":       vars.INSTANCE_ID,
		"INSTANCE_TYPE":     vars.INSTANCE_TYPE,
		"AVAILABILITY_ZONE": vars.AVAILABILITY_ZONE,
		"PUBLIC_HOSTNAME":   vars.PUBLIC_HOSTNAME,
		"GENERATED_AT":      vars.GENERATED_AT,
	}

	result := template
	for name, value := range varMap {
		placeholder := "${" + name + "}"
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// Write renders the template and overwrites outputPath with the result.
// The page is fully regenerated on every run; the parent directory is
// created if the web server package has not laid it down yet.
func Write(template string, vars *TemplateVars, outputPath string) error {
	output := Render(template, vars)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create web root: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}

	return nil
}
