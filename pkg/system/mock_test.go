package system

import (
	"context"
	"strings"
)

// MockExecutor is a mock command executor for testing. It records every
// command line it is asked to run.
type MockExecutor struct {
	LookPathFunc       func(file string) (string, error)
	RunFunc            func(name string, args ...string) (string, error)
	CombinedOutputFunc func(name string, args ...string) ([]byte, error)
	FileExistsFunc     func(path string) bool

	Commands []string
}

func (m *MockExecutor) record(name string, args ...string) {
	m.Commands = append(m.Commands, strings.Join(append([]string{name}, args...), " "))
}

func (m *MockExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}

func (m *MockExecutor) Run(_ context.Context, name string, args ...string) (string, error) {
	m.record(name, args...)
	if m.RunFunc != nil {
		return m.RunFunc(name, args...)
	}
	return "", nil
}

func (m *MockExecutor) CombinedOutput(_ context.Context, name string, args ...string) ([]byte, error) {
	m.record(name, args...)
	if m.CombinedOutputFunc != nil {
		return m.CombinedOutputFunc(name, args...)
	}
	return nil, nil
}

func (m *MockExecutor) FileExists(path string) bool {
	if m.FileExistsFunc != nil {
		return m.FileExistsFunc(path)
	}
	return true
}
