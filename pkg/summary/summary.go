// Package summary writes and parses the shell-style completion summary
// left behind by a provisioning run.
package summary

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Keys written to the summary file.
const (
	KeyRunID       = "RUN_ID"
	KeyCompletedAt = "COMPLETED_AT"
	KeyInstanceID  = "INSTANCE_ID"
	KeyStatus      = "STATUS"
	KeyFailedSteps = "FAILED_STEPS"
)

// Summary describes the outcome of a provisioning run.
type Summary struct {
	RunID       string
	CompletedAt time.Time
	InstanceID  string
	Status      string   // "ok" or "degraded"
	FailedSteps []string // IDs of advisory steps that failed
}

// Write overwrites path with the summary in KEY=VALUE form.
func Write(path string, s Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create summary directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# bootstrap completion summary\n")
	fmt.Fprintf(&b, "%s=%s\n", KeyRunID, s.RunID)
	fmt.Fprintf(&b, "%s=%s\n", KeyCompletedAt, s.CompletedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "%s=%s\n", KeyInstanceID, s.InstanceID)
	fmt.Fprintf(&b, "%s=%s\n", KeyStatus, s.Status)
	fmt.Fprintf(&b, "%s=%s\n", KeyFailedSteps, strings.Join(s.FailedSteps, ","))

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// Read parses a summary file back into a Summary.
func Read(path string) (Summary, error) {
	values, err := parseEnvFile(path)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		RunID:      values[KeyRunID],
		InstanceID: values[KeyInstanceID],
		Status:     values[KeyStatus],
	}
	if raw := values[KeyCompletedAt]; raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			s.CompletedAt = ts
		}
	}
	if raw := values[KeyFailedSteps]; raw != "" {
		s.FailedSteps = strings.Split(raw, ",")
		sort.Strings(s.FailedSteps)
	}
	return s, nil
}

// parseEnvFile parses a shell-style env file into key-value pairs.
// Comments and empty lines are skipped; single or double quotes around
// values are stripped.
func parseEnvFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values, scanner.Err()
}
