package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/payday/internal/service"
)

// MockWriter is a mock implementation of service.ReportWriter for testing.
type MockWriter struct {
	WriteFunc  func(ctx context.Context, report *service.Report) error
	LastReport *service.Report
	calls      int
	mu         sync.Mutex
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write implements service.ReportWriter.
func (m *MockWriter) Write(ctx context.Context, report *service.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.LastReport = report
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, report)
	}
	return nil
}

// Calls returns how many times Write was called.
func (m *MockWriter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// SetWriteError configures the mock to fail every Write with err.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteFunc = func(context.Context, *service.Report) error { return err }
}

var _ service.ReportWriter = (*MockWriter)(nil)
