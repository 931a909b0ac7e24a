package chunker

import (
	"github.com/stretchr/testify/mock"
)

// MockProgress is a mock implementation of the Progress interface for testing.
type MockProgress struct {
	mock.Mock
}

func (m *MockProgress) SetTotal(n int64) {
	m.Called(n)
}

func (m *MockProgress) Increment() {
	m.Called()
}
