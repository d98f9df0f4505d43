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

// CompletionHandler is the opaque callback pair attached to a Deferred
// Value. Exactly one of the two fields is invoked, exactly once, depending
// on whether the cell succeeds or fails. A nil field is treated as a no-op
// for that branch.
type CompletionHandler[V any] struct {
	Success func(v V)
	Failure func(err error)
}

const nilHandlerPanicMsg = "async: nil completion handler"

// dispatch invokes the appropriate branch of h for outcome, recovering any
// panic raised by the handler itself and routing it to sink as a handler
// fault, per the "handler exceptions do not corrupt the Deferred Value"
// invariant: a fault here can never be reassigned to the cell, because by
// the time a handler runs the cell is already terminal.
func dispatch[V any](h CompletionHandler[V], succeeded bool, value V, err error, sink FailureSink) {
	defer func() {
		if r := recover(); r != nil {
			sink.Report(panicToError(r))
		}
	}()

	if succeeded {
		if h.Success != nil {
			h.Success(value)
		}
		return
	}
	if h.Failure != nil {
		h.Failure(err)
	}
}
