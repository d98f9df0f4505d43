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

// Package health is the logging collaborator the rest of the repository
// wires into async's FailureSink contract. Sink satisfies async.FailureSink
// structurally, by having the right methods, not by declaring it — health
// has no reason to import async for that. It does import async for the
// shared "handled" marker, so a cause Handle reports here is recognized as
// already-logged if it later reaches a Deferred Value's Fail.
package health

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/tnmaygupta/sirius-kernel/async"
)

// Sink is an hclog-backed implementation of async.FailureSink.
type Sink struct {
	log hclog.Logger
}

// NewSink wraps log. A nil log falls back to hclog's default logger.
func NewSink(log hclog.Logger) *Sink {
	if log == nil {
		log = hclog.Default()
	}
	return &Sink{log: log}
}

// Report logs cause at error level with a stack-free diagnostic message.
// It does not itself mark cause handled; callers that need the "already
// reported" marker use async.MarkHandled on the value they pass onward.
func (s *Sink) Report(cause error) {
	s.log.Error("unhandled failure", "error", cause)
}

// IsFineEnabled reports whether trace-level logging is enabled.
func (s *Sink) IsFineEnabled() bool {
	return s.log.IsTrace()
}

// Fine logs a trace-level diagnostic record.
func (s *Sink) Fine(record string) {
	s.log.Trace(record)
}

// Ignore logs err at trace level, acknowledging it was seen without
// treating it as worth an error-level entry.
func (s *Sink) Ignore(err error) {
	if err == nil {
		return
	}
	s.log.Trace("ignored error", "error", err)
}

// Handle is the logging entry point for code paths that catch an error
// directly, mirroring the original framework's Exceptions.handle factory:
// it reports the cause through sink and returns it marked handled, so a
// caller can still use errors.Is/errors.As against the original cause, and
// so a later Fail on a Deferred Value carrying this cause does not log it
// twice.
func Handle(sink interface {
	Report(error)
}, cause error) error {
	if cause == nil {
		return nil
	}
	if async.IsHandled(cause) {
		return cause
	}
	sink.Report(cause)
	return async.MarkHandled(cause)
}

// Summary renders a short, human-readable description of cause suitable
// for a CLI exit message.
func Summary(cause error) string {
	if cause == nil {
		return "ok"
	}
	return fmt.Sprintf("failed: %v", cause)
}
