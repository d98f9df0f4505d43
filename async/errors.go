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
	"errors"
	"fmt"
)

var (
	// ErrDoubleCompletion is reported to a FailureSink when Succeed or Fail
	// is called on a cell that already reached a terminal state.
	ErrDoubleCompletion = errors.New("async: deferred value already completed")

	// ErrConsumerResult fails the cell returned by FlatTransform when its
	// mapper returns a nil Deferred Value instead of a cell to adopt.
	ErrConsumerResult = errors.New("async: deferred value produced no result")
)

// PanicError wraps a value recovered from a panic raised inside a
// transformer, flat-transformer, or completion handler, so it can travel as
// a regular error through Fail/Failure.
type PanicError struct {
	v any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("async: recovered panic: %v", e.v)
}

// Value returns the original value passed to panic.
func (e *PanicError) Value() any {
	return e.v
}

func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return &PanicError{v: err}
	}
	return &PanicError{v: r}
}

// handledError wraps a failure cause that has already been reported to a
// FailureSink, so that the same cause flowing through a chained cell whose
// own log_errors_flag is also set isn't logged a second time.
type handledError struct {
	err error
}

func (h *handledError) Error() string { return h.err.Error() }
func (h *handledError) Unwrap() error { return h.err }

// MarkHandled wraps err so IsHandled reports true for it. It is idempotent:
// marking an already-handled error returns it unchanged.
func MarkHandled(err error) error {
	if err == nil || IsHandled(err) {
		return err
	}
	return &handledError{err: err}
}

// IsHandled reports whether err (or anything it wraps) has already been
// reported to a FailureSink.
func IsHandled(err error) bool {
	var h *handledError
	return errors.As(err, &h)
}
