package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/sapra/internal/export"
)

// MockWriter is a mock implementation of export.Writer for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, sheet export.Sheet) error
	WriteCalls     []WriteCall
	WriteCallCount int
	mu             sync.Mutex
}

var _ export.Writer = (*MockWriter)(nil)

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error error
	Sheet export.Sheet
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// Write implements export.Writer.
func (m *MockWriter) Write(ctx context.Context, sheet export.Sheet) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, sheet)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{Sheet: sheet, Error: err})
	return err
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// SetWriteError configures the mock to return err from every Write call.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(context.Context, export.Sheet) error {
		return err
	}
}
