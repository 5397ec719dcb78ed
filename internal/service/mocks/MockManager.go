package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

type MockManager struct {
	mock.Mock
}

func (m *MockManager) Do(ctx context.Context, fn func(context.Context) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// PassthroughManager runs the function directly and propagates its error,
// for tests that do not care about transaction boundaries.
type PassthroughManager struct{}

func (PassthroughManager) Do(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
