package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockDocumentSource is a mock implementation of the DocumentSource interface.
type MockDocumentSource struct {
	mock.Mock
}

var _ DocumentSource = &MockDocumentSource{} // Compile-time check

// Origin implements the DocumentSource interface.
func (m *MockDocumentSource) Origin() string {
	ret := m.Called()
	origin, _ := ret.Get(0).(string)
	return origin
}

// Fetch implements the DocumentSource interface.
func (m *MockDocumentSource) Fetch(ctx context.Context, resource string) ([]byte, error) {
	ret := m.Called(ctx, resource)
	data, _ := ret.Get(0).([]byte)
	return data, ret.Error(1)
}

// Stamp implements the DocumentSource interface.
func (m *MockDocumentSource) Stamp(ctx context.Context) (string, error) {
	ret := m.Called(ctx)
	stamp, _ := ret.Get(0).(string)
	return stamp, ret.Error(1)
}
