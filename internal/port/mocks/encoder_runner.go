// Package mocks holds hand-written testify mocks for the port interfaces,
// shaped like mockery expecter output so call sites read the same.
package mocks

import (
	context "context"

	port "github.com/bnema/mediaconv/internal/port"
	mock "github.com/stretchr/testify/mock"
)

// EncoderRunnerMock is a mock type for the EncoderRunner type
type EncoderRunnerMock struct {
	mock.Mock
}

type EncoderRunnerMock_Expecter struct {
	mock *mock.Mock
}

func (_m *EncoderRunnerMock) EXPECT() *EncoderRunnerMock_Expecter {
	return &EncoderRunnerMock_Expecter{mock: &_m.Mock}
}

// Run provides a mock function with given fields: ctx, inv
func (_m *EncoderRunnerMock) Run(ctx context.Context, inv port.Invocation) ([]byte, error) {
	ret := _m.Called(ctx, inv)

	if len(ret) == 0 {
		panic("no return value specified for Run")
	}

	var r0 []byte
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, port.Invocation) ([]byte, error)); ok {
		return rf(ctx, inv)
	}
	if rf, ok := ret.Get(0).(func(context.Context, port.Invocation) []byte); ok {
		r0 = rf(ctx, inv)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}

	if rf, ok := ret.Get(1).(func(context.Context, port.Invocation) error); ok {
		r1 = rf(ctx, inv)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// EncoderRunnerMock_Run_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Run'
type EncoderRunnerMock_Run_Call struct {
	*mock.Call
}

// Run is a helper method to define mock.On call
//   - ctx context.Context
//   - inv port.Invocation
func (_e *EncoderRunnerMock_Expecter) Run(ctx interface{}, inv interface{}) *EncoderRunnerMock_Run_Call {
	return &EncoderRunnerMock_Run_Call{Call: _e.mock.On("Run", ctx, inv)}
}

func (_c *EncoderRunnerMock_Run_Call) Run(run func(ctx context.Context, inv port.Invocation)) *EncoderRunnerMock_Run_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(port.Invocation))
	})
	return _c
}

func (_c *EncoderRunnerMock_Run_Call) Return(_a0 []byte, _a1 error) *EncoderRunnerMock_Run_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *EncoderRunnerMock_Run_Call) RunAndReturn(run func(context.Context, port.Invocation) ([]byte, error)) *EncoderRunnerMock_Run_Call {
	_c.Call.Return(run)
	return _c
}

// NewEncoderRunnerMock creates a new instance of EncoderRunnerMock. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewEncoderRunnerMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *EncoderRunnerMock {
	mock := &EncoderRunnerMock{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
