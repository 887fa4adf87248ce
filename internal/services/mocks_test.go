package services

import (
	"context"
	"fmt"
	"sync"
)

type mockApprover struct {
	approved bool
	err      error
	calls    int
	paths    []string
}

func (m *mockApprover) RequestApproval(_ context.Context, paths []string) (bool, error) {
	m.calls++
	m.paths = paths
	return m.approved, m.err
}

type mockSelector struct {
	keep    []string
	err     error
	offered []string
}

func (m *mockSelector) SelectFiles(_ context.Context, paths []string) ([]string, error) {
	m.offered = paths
	if m.err != nil {
		return nil, m.err
	}
	return m.keep, nil
}

type recordingLogger struct {
	mu     sync.Mutex
	errors []string
	warns  []string
	infos  []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warn(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}
