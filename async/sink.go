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

import "sync"

// FailureSink is the external logging hook invoked for unhandled failures
// and for faults raised by completion handlers.
//
// A Deferred Value never owns its sink; it calls into whatever sink was
// installed at process scope (see DefaultSink/SetDefaultSink) or passed
// explicitly to HandleErrors.
type FailureSink interface {
	// Report logs cause with full diagnostic context. It does not mark
	// cause itself: Fail wraps the cause with MarkHandled after reporting
	// it, so that the same cause flowing through a chained cell isn't
	// logged twice.
	Report(cause error)

	// IsFineEnabled reports whether fine-grained (verbose) logging is
	// currently enabled, so callers can skip building a diagnostic payload
	// when it would be discarded anyway.
	IsFineEnabled() bool

	// Fine logs a fine-grained diagnostic record.
	Fine(record string)

	// Ignore swallows a benign error without logging it.
	Ignore(err error)
}

// discardSink is a FailureSink that drops everything. It backs
// DefaultSink until the host installs a real one (see the health package),
// so a Deferred Value is always safe to fail even before bootstrap runs.
type discardSink struct{}

func (discardSink) Report(error)        {}
func (discardSink) IsFineEnabled() bool { return false }
func (discardSink) Fine(string)         {}
func (discardSink) Ignore(error)        {}

var (
	defaultSinkMu sync.RWMutex
	defaultSink   FailureSink = discardSink{}
)

// DefaultSink returns the process-wide FailureSink. New captures it as the
// sink of each cell it builds; HandleErrors does not replace a cell's sink.
func DefaultSink() FailureSink {
	defaultSinkMu.RLock()
	defer defaultSinkMu.RUnlock()
	return defaultSink
}

// SetDefaultSink installs the process-wide FailureSink. Passing nil restores
// the built-in no-op sink. This is a collaborator hook: async never
// constructs a real sink itself, it only ever calls through this interface.
func SetDefaultSink(sink FailureSink) {
	defaultSinkMu.Lock()
	defer defaultSinkMu.Unlock()
	if sink == nil {
		sink = discardSink{}
	}
	defaultSink = sink
}
