package system

import (
	"context"
	"fmt"
	"strings"
)

// ServiceManager drives systemctl for a single unit.
type ServiceManager struct {
	executor CommandExecutor
	unit     string
}

// NewServiceManager creates a ServiceManager for the given unit using the
// real executor.
func NewServiceManager(unit string) *ServiceManager {
	return &ServiceManager{executor: &RealExecutor{}, unit: unit}
}

// NewServiceManagerWithExecutor creates a ServiceManager with a custom
// executor (for testing).
func NewServiceManagerWithExecutor(exec CommandExecutor, unit string) *ServiceManager {
	return &ServiceManager{executor: exec, unit: unit}
}

// Unit returns the managed unit name.
func (s *ServiceManager) Unit() string {
	return s.unit
}

// Start starts the unit.
func (s *ServiceManager) Start(ctx context.Context) error {
	return s.systemctl(ctx, "start")
}

// Enable enables the unit so it starts on subsequent boots.
func (s *ServiceManager) Enable(ctx context.Context) error {
	return s.systemctl(ctx, "enable")
}

// Restart restarts the unit.
func (s *ServiceManager) Restart(ctx context.Context) error {
	return s.systemctl(ctx, "restart")
}

// IsActive reports whether the unit is currently active.
func (s *ServiceManager) IsActive(ctx context.Context) bool {
	out, err := s.executor.Run(ctx, "systemctl", "is-active", s.unit)
	return err == nil && strings.TrimSpace(out) == "active"
}

func (s *ServiceManager) systemctl(ctx context.Context, verb string) error {
	out, err := s.executor.CombinedOutput(ctx, "systemctl", verb, s.unit)
	if err != nil {
		return fmt.Errorf("systemctl %s %s failed: %s: %w", verb, s.unit, firstLine(out), err)
	}
	return nil
}
