package assistant

import (
	"github.com/poiesic/jotpad/ai"
	"github.com/poiesic/jotpad/core"
)

// Failure describes one failed provider operation.
type Failure struct {
	Operation ai.Operation
	Provider  core.ProviderID
	Error     string
}

// FailureObserver is notified of every failed operation.
// Implementations must not block; they are called on the caller's goroutine.
type FailureObserver interface {
	OnFailure(f Failure)
}

// FailureObserverFunc adapts a function to FailureObserver.
type FailureObserverFunc func(f Failure)

func (fn FailureObserverFunc) OnFailure(f Failure) {
	fn(f)
}

// noopObserver is a no-op implementation of FailureObserver
type noopObserver struct{}

var _ FailureObserver = (*noopObserver)(nil)

func (noopObserver) OnFailure(_ Failure) {}
