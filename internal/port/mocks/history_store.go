package mocks

import (
	context "context"

	domain "github.com/bnema/mediaconv/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// HistoryStoreMock is a mock type for the HistoryStore type
type HistoryStoreMock struct {
	mock.Mock
}

type HistoryStoreMock_Expecter struct {
	mock *mock.Mock
}

func (_m *HistoryStoreMock) EXPECT() *HistoryStoreMock_Expecter {
	return &HistoryStoreMock_Expecter{mock: &_m.Mock}
}

// Get provides a mock function with given fields: ctx, id
func (_m *HistoryStoreMock) Get(ctx context.Context, id string) (*domain.ConversionRecord, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for Get")
	}

	var r0 *domain.ConversionRecord
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*domain.ConversionRecord, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *domain.ConversionRecord); ok {
		r0 = rf(ctx, id)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.ConversionRecord)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// HistoryStoreMock_Get_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Get'
type HistoryStoreMock_Get_Call struct {
	*mock.Call
}

// Get is a helper method to define mock.On call
//   - ctx context.Context
//   - id string
func (_e *HistoryStoreMock_Expecter) Get(ctx interface{}, id interface{}) *HistoryStoreMock_Get_Call {
	return &HistoryStoreMock_Get_Call{Call: _e.mock.On("Get", ctx, id)}
}

func (_c *HistoryStoreMock_Get_Call) Run(run func(ctx context.Context, id string)) *HistoryStoreMock_Get_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})
	return _c
}

func (_c *HistoryStoreMock_Get_Call) Return(_a0 *domain.ConversionRecord, _a1 error) *HistoryStoreMock_Get_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *HistoryStoreMock_Get_Call) RunAndReturn(run func(context.Context, string) (*domain.ConversionRecord, error)) *HistoryStoreMock_Get_Call {
	_c.Call.Return(run)
	return _c
}

// ListRecent provides a mock function with given fields: ctx, limit
func (_m *HistoryStoreMock) ListRecent(ctx context.Context, limit int) ([]*domain.ConversionRecord, error) {
	ret := _m.Called(ctx, limit)

	if len(ret) == 0 {
		panic("no return value specified for ListRecent")
	}

	var r0 []*domain.ConversionRecord
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) ([]*domain.ConversionRecord, error)); ok {
		return rf(ctx, limit)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) []*domain.ConversionRecord); ok {
		r0 = rf(ctx, limit)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*domain.ConversionRecord)
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// HistoryStoreMock_ListRecent_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ListRecent'
type HistoryStoreMock_ListRecent_Call struct {
	*mock.Call
}

// ListRecent is a helper method to define mock.On call
//   - ctx context.Context
//   - limit int
func (_e *HistoryStoreMock_Expecter) ListRecent(ctx interface{}, limit interface{}) *HistoryStoreMock_ListRecent_Call {
	return &HistoryStoreMock_ListRecent_Call{Call: _e.mock.On("ListRecent", ctx, limit)}
}

func (_c *HistoryStoreMock_ListRecent_Call) Run(run func(ctx context.Context, limit int)) *HistoryStoreMock_ListRecent_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(int))
	})
	return _c
}

func (_c *HistoryStoreMock_ListRecent_Call) Return(_a0 []*domain.ConversionRecord, _a1 error) *HistoryStoreMock_ListRecent_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *HistoryStoreMock_ListRecent_Call) RunAndReturn(run func(context.Context, int) ([]*domain.ConversionRecord, error)) *HistoryStoreMock_ListRecent_Call {
	_c.Call.Return(run)
	return _c
}

// Save provides a mock function with given fields: ctx, record
func (_m *HistoryStoreMock) Save(ctx context.Context, record *domain.ConversionRecord) error {
	ret := _m.Called(ctx, record)

	if len(ret) == 0 {
		panic("no return value specified for Save")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.ConversionRecord) error); ok {
		r0 = rf(ctx, record)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// HistoryStoreMock_Save_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Save'
type HistoryStoreMock_Save_Call struct {
	*mock.Call
}

// Save is a helper method to define mock.On call
//   - ctx context.Context
//   - record *domain.ConversionRecord
func (_e *HistoryStoreMock_Expecter) Save(ctx interface{}, record interface{}) *HistoryStoreMock_Save_Call {
	return &HistoryStoreMock_Save_Call{Call: _e.mock.On("Save", ctx, record)}
}

func (_c *HistoryStoreMock_Save_Call) Run(run func(ctx context.Context, record *domain.ConversionRecord)) *HistoryStoreMock_Save_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*domain.ConversionRecord))
	})
	return _c
}

func (_c *HistoryStoreMock_Save_Call) Return(_a0 error) *HistoryStoreMock_Save_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *HistoryStoreMock_Save_Call) RunAndReturn(run func(context.Context, *domain.ConversionRecord) error) *HistoryStoreMock_Save_Call {
	_c.Call.Return(run)
	return _c
}

// NewHistoryStoreMock creates a new instance of HistoryStoreMock. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewHistoryStoreMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *HistoryStoreMock {
	mock := &HistoryStoreMock{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
