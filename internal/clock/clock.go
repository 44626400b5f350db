// Package clock abstracts the wall clock so reporting windows and receipt
// numbers can be pinned in tests.
package clock

import "time"

// Clock is an interface for time operations to enable testability.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time in UTC.
type RealClock struct{}

func NewRealClock() Clock { return RealClock{} }

func (RealClock) Now() time.Time { return time.Now().UTC() }

// MockClock is a test implementation that allows setting the current time.
type MockClock struct {
	current time.Time
}

func NewMockClock(start time.Time) *MockClock {
	return &MockClock{current: start}
}

func (m *MockClock) Now() time.Time { return m.current }

func (m *MockClock) Set(t time.Time) { m.current = t }

// Advance moves the mock clock forward by d.
func (m *MockClock) Advance(d time.Duration) { m.current = m.current.Add(d) }
