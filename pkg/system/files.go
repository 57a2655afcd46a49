package system

import (
	"context"
	"fmt"
	"io/fs"
)

// FileOwner applies ownership and permission changes the way the original
// provisioning flow does: recursive chown/chmod over the web root.
type FileOwner struct {
	executor CommandExecutor
}

// NewFileOwner creates a FileOwner using the real executor.
func NewFileOwner() *FileOwner {
	return &FileOwner{executor: &RealExecutor{}}
}

// NewFileOwnerWithExecutor creates a FileOwner with a custom executor
// (for testing).
func NewFileOwnerWithExecutor(exec CommandExecutor) *FileOwner {
	return &FileOwner{executor: exec}
}

// Chown recursively sets ownership of path to owner (user:group form).
func (f *FileOwner) Chown(ctx context.Context, path, owner string) error {
	out, err := f.executor.CombinedOutput(ctx, "chown", "-R", owner, path)
	if err != nil {
		return fmt.Errorf("chown %s %s failed: %s: %w", owner, path, firstLine(out), err)
	}
	return nil
}

// Chmod recursively sets permissions of path to mode.
func (f *FileOwner) Chmod(ctx context.Context, path string, mode fs.FileMode) error {
	out, err := f.executor.CombinedOutput(ctx, "chmod", "-R", fmt.Sprintf("%o", mode), path)
	if err != nil {
		return fmt.Errorf("chmod %o %s failed: %s: %w", mode, path, firstLine(out), err)
	}
	return nil
}
