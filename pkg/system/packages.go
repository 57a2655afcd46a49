package system

import (
	"context"
	"fmt"
	"strings"
)

// PackageManager drives yum on the host.
type PackageManager struct {
	executor CommandExecutor
}

// NewPackageManager creates a PackageManager using the real executor.
func NewPackageManager() *PackageManager {
	return &PackageManager{executor: &RealExecutor{}}
}

// NewPackageManagerWithExecutor creates a PackageManager with a custom
// executor (for testing).
func NewPackageManagerWithExecutor(exec CommandExecutor) *PackageManager {
	return &PackageManager{executor: exec}
}

// Update refreshes package metadata and applies pending updates.
func (p *PackageManager) Update(ctx context.Context) error {
	out, err := p.executor.CombinedOutput(ctx, "yum", "update", "-y")
	if err != nil {
		return fmt.Errorf("yum update failed: %s: %w", firstLine(out), err)
	}
	return nil
}

// Install installs the named package. Installing an already-present
// package is a no-op for yum, which keeps re-runs idempotent.
func (p *PackageManager) Install(ctx context.Context, pkg string) error {
	out, err := p.executor.CombinedOutput(ctx, "yum", "install", "-y", pkg)
	if err != nil {
		return fmt.Errorf("yum install %s failed: %s: %w", pkg, firstLine(out), err)
	}
	return nil
}

// IsInstalled reports whether the named package is present.
func (p *PackageManager) IsInstalled(ctx context.Context, pkg string) bool {
	_, err := p.executor.Run(ctx, "rpm", "-q", pkg)
	return err == nil
}

// firstLine trims command output down to its first non-empty line for
// inclusion in error messages.
func firstLine(out []byte) string {
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return "no output"
}
