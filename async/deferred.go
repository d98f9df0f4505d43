// Copyright 2026 The Sirius-Go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package async

import (
	"fmt"
	"sync"
	"time"

	"github.com/tnmaygupta/sirius-kernel/internal/state"
)

// Deferred is a single-assignment cell representing a computation's eventual
// outcome. The zero value is not usable; construct one with New.
type Deferred[V any] struct {
	mu     sync.Mutex
	status state.Status

	value V
	err   error

	handlers []CompletionHandler[V]

	// done is closed exactly once, after value/err are written, inside the
	// same critical section that performs the terminal transition. Readers
	// that observe done closed are guaranteed (by Go's memory model, via
	// the close/receive synchronization point) to see value/err without
	// needing mu themselves.
	done chan struct{}

	sink FailureSink
}

// New returns a fresh Pending Deferred Value, reporting unhandled failures
// to the process-wide DefaultSink.
func New[V any]() *Deferred[V] {
	return &Deferred[V]{
		status: state.New(),
		done:   make(chan struct{}),
		sink:   DefaultSink(),
	}
}

// Succeeded returns a Deferred Value already resolved to v.
func Succeeded[V any](v V) *Deferred[V] {
	d := New[V]()
	d.Succeed(v)
	return d
}

// Failed returns a Deferred Value already resolved to err.
func Failed[V any](err error) *Deferred[V] {
	d := New[V]()
	d.Fail(err)
	return d
}

// sinkOrDefault returns d's sink, which New captures from DefaultSink when
// the cell is built (a later SetDefaultSink does not change it), falling
// back to the current process-wide default only if d.sink is nil.
func (d *Deferred[V]) sinkOrDefault() FailureSink {
	if d.sink != nil {
		return d.sink
	}
	return DefaultSink()
}

// Succeed moves the cell from Pending to Succeeded(v), then dispatches every
// handler registered so far, in FIFO order, on the calling goroutine.
//
// Calling Succeed (or Fail) on a cell that already reached a terminal state
// is a contract violation: it is reported to the sink and otherwise ignored,
// never re-dispatching handlers or mutating the stored outcome.
func (d *Deferred[V]) Succeed(v V) {
	d.mu.Lock()
	ok, _ := d.status.TryComplete(state.Succeeded)
	if !ok {
		d.mu.Unlock()
		d.sinkOrDefault().Report(ErrDoubleCompletion)
		return
	}

	d.value = v
	handlers := d.handlers
	d.handlers = nil
	close(d.done)
	d.mu.Unlock()

	sink := d.sinkOrDefault()
	for _, h := range handlers {
		dispatch(h, true, v, nil, sink)
	}
}

// Fail moves the cell from Pending to Failed(err), logging err through the
// sink first if log_errors_flag is still set, then dispatches every handler
// registered so far, in FIFO order, on the calling goroutine.
func (d *Deferred[V]) Fail(err error) {
	if err == nil {
		panic("async: Fail called with a nil error")
	}

	d.mu.Lock()
	ok, logErrors := d.status.TryComplete(state.Failed)
	if !ok {
		d.mu.Unlock()
		d.sinkOrDefault().Report(ErrDoubleCompletion)
		return
	}

	sink := d.sinkOrDefault()
	switch {
	case logErrors && !IsHandled(err):
		sink.Report(err)
		err = MarkHandled(err)
	case !logErrors && !IsHandled(err) && sink.IsFineEnabled():
		sink.Fine(fmt.Sprintf("unobserved failure: %v", err))
	}

	d.err = err
	handlers := d.handlers
	d.handlers = nil
	close(d.done)
	d.mu.Unlock()

	var zero V
	for _, h := range handlers {
		dispatch(h, false, zero, err, sink)
	}
}

// Peek returns the value and true iff the cell is Succeeded. It never
// blocks.
func (d *Deferred[V]) Peek() (V, bool) {
	var zero V
	if !d.isDone() {
		return zero, false
	}
	if outcome, _ := d.status.Load(); outcome == state.Succeeded {
		return d.value, true
	}
	return zero, false
}

// Failure returns the failure cause iff the cell is Failed, else nil.
func (d *Deferred[V]) Failure() error {
	if !d.isDone() {
		return nil
	}
	if outcome, _ := d.status.Load(); outcome == state.Failed {
		return d.err
	}
	return nil
}

func (d *Deferred[V]) isDone() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

// IsCompleted reports whether the cell has reached a terminal state.
func (d *Deferred[V]) IsCompleted() bool {
	return d.isDone()
}

// IsSuccessful reports whether the cell is Succeeded.
func (d *Deferred[V]) IsSuccessful() bool {
	if !d.isDone() {
		return false
	}
	outcome, _ := d.status.Load()
	return outcome == state.Succeeded
}

// IsFailed reports whether the cell is Failed.
func (d *Deferred[V]) IsFailed() bool {
	if !d.isDone() {
		return false
	}
	outcome, _ := d.status.Load()
	return outcome == state.Failed
}

// OnComplete registers h. If the cell is already terminal, h is invoked
// immediately, synchronously, on the calling goroutine, before OnComplete
// returns. Otherwise h is appended to the handler list and log_errors_flag
// is cleared, matching the source's behavior of clearing it on any
// registration, not only a failure-observing one.
//
// OnComplete returns the receiver for fluent chaining.
func (d *Deferred[V]) OnComplete(h CompletionHandler[V]) *Deferred[V] {
	if h.Success == nil && h.Failure == nil {
		panic(nilHandlerPanicMsg)
	}

	d.mu.Lock()
	if d.status.RegisterIfPending() {
		d.handlers = append(d.handlers, h)
		d.mu.Unlock()
		return d
	}
	d.mu.Unlock()

	outcome, _ := d.status.Load()
	sink := d.sinkOrDefault()
	if outcome == state.Succeeded {
		dispatch(h, true, d.value, nil, sink)
	} else {
		dispatch(h, false, *new(V), d.err, sink)
	}
	return d
}

// OnSuccess registers a handler that only observes successful completion.
// A panic raised by f would, per the source, be routed to Fail on this
// cell if it were still Pending; since f only ever runs once the cell is
// already terminal, it is always routed to the sink instead — this is the
// "handler fault" kind in the error taxonomy, never reassigned to an
// already-terminal cell.
func (d *Deferred[V]) OnSuccess(f func(v V)) *Deferred[V] {
	return d.OnComplete(CompletionHandler[V]{
		Success: func(v V) {
			defer func() {
				if r := recover(); r != nil {
					d.sinkOrDefault().Report(panicToError(r))
				}
			}()
			f(v)
		},
	})
}

// OnFailure registers a handler that only observes failed completion, and
// clears log_errors_flag, since the registrant is now observing failures.
func (d *Deferred[V]) OnFailure(f func(err error)) *Deferred[V] {
	d.status.ClearLogErrors()
	return d.OnComplete(CompletionHandler[V]{
		Failure: f,
	})
}

// DoNotLogErrors clears log_errors_flag; idempotent. Returns the receiver
// for fluent chaining.
func (d *Deferred[V]) DoNotLogErrors() *Deferred[V] {
	d.status.ClearLogErrors()
	return d
}

// HandleErrors registers a failure handler that reports any failure cause
// to sink, and clears log_errors_flag.
func (d *Deferred[V]) HandleErrors(sink FailureSink) *Deferred[V] {
	return d.OnFailure(func(err error) {
		sink.Report(err)
	})
}

// Await blocks the calling goroutine until the cell completes or timeout
// elapses, whichever happens first. A non-positive timeout is a
// non-blocking poll: Await(0) on a Pending cell returns immediately with
// IsCompleted() still false. Await never returns the failure cause; callers
// inspect Failure() afterward.
func (d *Deferred[V]) Await(timeout time.Duration) {
	if d.isDone() {
		return
	}
	if timeout <= 0 {
		return
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-d.done:
	case <-timer.C:
	}
}
