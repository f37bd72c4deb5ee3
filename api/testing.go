// Package api
// Author: momentics
//
// Mock/testing utilities for all core contracts; extendable for new interfaces.

package api

import "time"

// MockThread is a test and mock-friendly implementation of Thread.
type MockThread struct {
	StartFunc       func() error
	JoinFunc        func() (int, error)
	SetPriorityFunc func(Priority) error
	DestroyFunc     func() error
}

func (m *MockThread) Start() error                { return m.StartFunc() }
func (m *MockThread) Join() (int, error)          { return m.JoinFunc() }
func (m *MockThread) SetPriority(p Priority) error { return m.SetPriorityFunc(p) }
func (m *MockThread) Destroy() error              { return m.DestroyFunc() }

// MockThreadFactory is a test and mock-friendly implementation of ThreadFactory.
type MockThreadFactory struct {
	NewFunc         func(ThreadWorker, any) (Thread, error)
	YieldFunc       func()
	SleepFunc       func(time.Duration)
	CooperativeFunc func() bool
}

func (m *MockThreadFactory) New(w ThreadWorker, data any) (Thread, error) { return m.NewFunc(w, data) }
func (m *MockThreadFactory) Yield()                                       { m.YieldFunc() }
func (m *MockThreadFactory) Sleep(d time.Duration)                        { m.SleepFunc(d) }
func (m *MockThreadFactory) Cooperative() bool                            { return m.CooperativeFunc() }

// MockMutex is a test and mock-friendly implementation of Mutex.
type MockMutex struct {
	LockFunc    func()
	UnlockFunc  func()
	TryLockFunc func() bool
	DestroyFunc func() bool
}

func (m *MockMutex) Lock()         { m.LockFunc() }
func (m *MockMutex) Unlock()       { m.UnlockFunc() }
func (m *MockMutex) TryLock() bool { return m.TryLockFunc() }
func (m *MockMutex) Destroy() bool { return m.DestroyFunc() }

// MockExecutor is a test and mock-friendly implementation of Executor.
type MockExecutor struct {
	SubmitFunc     func(func()) error
	NumWorkersFunc func() int
}

func (m *MockExecutor) Submit(task func()) error { return m.SubmitFunc(task) }
func (m *MockExecutor) NumWorkers() int          { return m.NumWorkersFunc() }

// Extend with mocks for all additional core contracts as architecture evolves.
