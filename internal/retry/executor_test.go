package retry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"syscall"
	"testing"
	"time"
)

// mockOperation fails with err for the first failures calls.
type mockOperation struct {
	invocations int
	failures    int
	err         error
}

func (m *mockOperation) execute(context.Context) error {
	m.invocations++
	if m.invocations <= m.failures {
		return m.err
	}
	return nil
}

func busyErr() error {
	return &fs.PathError{Op: "rename", Path: "a.txt", Err: syscall.EBUSY}
}

func fastBackoff(attempts int) *ExponentialBackoff {
	return NewExponentialBackoff(attempts, WithInitialDelay(time.Millisecond), WithJitter(0))
}

func TestExecutor_SuccessOnFirstAttempt(t *testing.T) {
	op := &mockOperation{}
	err := NewExecutor(NewFileErrorClassifier(), fastBackoff(3)).Execute(context.Background(), op.execute)

	if err != nil {
		t.Errorf("Expected success, got error: %v", err)
	}
	if op.invocations != 1 {
		t.Errorf("Expected 1 invocation, got %d", op.invocations)
	}
}

func TestExecutor_SuccessAfterRetries(t *testing.T) {
	op := &mockOperation{failures: 2, err: busyErr()}

	var retries []int
	executor := NewExecutor(NewFileErrorClassifier(), fastBackoff(5)).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			retries = append(retries, attempt)
		})

	if err := executor.Execute(context.Background(), op.execute); err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}
	if op.invocations != 3 {
		t.Errorf("Expected 3 invocations, got %d", op.invocations)
	}
	if len(retries) != 2 || retries[0] != 0 || retries[1] != 1 {
		t.Errorf("Expected retry callbacks for attempts [0 1], got %v", retries)
	}
}

func TestExecutor_ExhaustsAttempts(t *testing.T) {
	op := &mockOperation{failures: 100, err: busyErr()}

	err := NewExecutor(NewFileErrorClassifier(), fastBackoff(2)).Execute(context.Background(), op.execute)

	if !errors.Is(err, syscall.EBUSY) {
		t.Fatalf("Expected last transient error, got %v", err)
	}
	if op.invocations != 3 {
		t.Errorf("Expected 1 try + 2 retries = 3 invocations, got %d", op.invocations)
	}
}

func TestExecutor_FatalErrorStopsImmediately(t *testing.T) {
	op := &mockOperation{failures: 100, err: fmt.Errorf("write: %w", fs.ErrPermission)}

	err := NewExecutor(NewFileErrorClassifier(), fastBackoff(5)).Execute(context.Background(), op.execute)

	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("Expected permission error, got %v", err)
	}
	if op.invocations != 1 {
		t.Errorf("Expected 1 invocation for fatal error, got %d", op.invocations)
	}
}

func TestExecutor_NoRetry(t *testing.T) {
	op := &mockOperation{failures: 100, err: busyErr()}

	err := NewExecutor(NewFileErrorClassifier(), NoRetry{}).Execute(context.Background(), op.execute)
	if err == nil {
		t.Fatal("Expected error")
	}
	if op.invocations != 1 {
		t.Errorf("Expected 1 invocation, got %d", op.invocations)
	}
}

func TestExecutor_ContextCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	op := &mockOperation{failures: 100, err: busyErr()}

	executor := NewExecutor(NewFileErrorClassifier(), NewExponentialBackoff(5, WithInitialDelay(time.Hour), WithJitter(0))).
		WithOnRetry(func(int, error, time.Duration) { cancel() })

	err := executor.Execute(ctx, op.execute)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if op.invocations != 1 {
		t.Errorf("Expected 1 invocation, got %d", op.invocations)
	}
}

func TestExecutor_WithOnRetryDoesNotMutate(t *testing.T) {
	base := NewExecutor(NewFileErrorClassifier(), fastBackoff(1))
	withCallback := base.WithOnRetry(func(int, error, time.Duration) {})

	if base.onRetry != nil {
		t.Error("WithOnRetry modified the receiver")
	}
	if withCallback.onRetry == nil {
		t.Error("WithOnRetry did not set the callback on the copy")
	}
}

func TestNewExecutor_PanicsOnNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for nil classifier")
		}
	}()
	NewExecutor(nil, NoRetry{})
}
