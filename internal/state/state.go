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

// Package state holds the atomic status word shared by every Deferred Value.
//
// The status is split into three sections, from the right:
//   - a 1-bit spin lock, acquired for the short critical sections that read
//     and update the rest of the word.
//   - a 2-bit outcome section: pending, succeeded, or failed.
//   - a 1-bit logErrors flag, cleared the first time any completion handler
//     is attached while the cell is still pending.
//
// The lock is not a sync.Mutex; it's a single bit acquired with
// atomic.CompareAndSwapUint32 and released with a plain atomic store, with
// contending callers yielding via runtime.Gosched instead of actively
// spinning. Because every critical section here only does a handful of
// bitwise operations, the lock is held briefly enough that this performs
// well without the bookkeeping a full mutex carries, and it naturally
// resolves the registration-vs-completion race: either the transition to a
// terminal outcome wins the lock first and the registering goroutine
// observes a terminal status when it acquires the lock next, or the
// registration happens first and is recorded before the transition can run.
package state

import (
	"runtime"
	"sync/atomic"
)

// Status is the atomic word describing a Deferred Value's outcome and
// logging policy. The zero value is Pending, with logErrors set.
type Status uint32

const (
	lockBit uint32 = 1 << 0

	// the outcome section, 2 bits, starting right after the lock bit.
	outcomePending   uint32 = 0 << 1
	outcomeSucceeded uint32 = 1 << 1
	outcomeFailed    uint32 = 2 << 1
	outcomeSetMask   uint32 = 3 << 1
	outcomeClrMask          = ^outcomeSetMask

	// logErrors is set by default (at the zero value, logErrorsClearedBit = 0 means
	// "set"); clearing it is a one-way operation, performed by storing the
	// bit as 1 ("cleared").
	logErrorsClearedBit uint32 = 1 << 3
)

// New returns a Status value in the Pending outcome with logging enabled.
func New() Status {
	return Status(outcomePending)
}

func (s *Status) acquire() uint32 {
	for {
		cs := atomic.LoadUint32((*uint32)(s))
		if cs&lockBit != 0 {
			runtime.Gosched()
			continue
		}
		if atomic.CompareAndSwapUint32((*uint32)(s), cs, cs|lockBit) {
			return cs
		}
	}
}

func (s *Status) release(next uint32) {
	atomic.StoreUint32((*uint32)(s), next&^lockBit)
}

// Outcome is the tri-state outcome carried by a Status word.
type Outcome int

const (
	Pending Outcome = iota
	Succeeded
	Failed
)

func outcomeOf(word uint32) Outcome {
	switch word & outcomeSetMask {
	case outcomeSucceeded:
		return Succeeded
	case outcomeFailed:
		return Failed
	default:
		return Pending
	}
}

// Load returns the current outcome and whether error logging is still
// enabled, without acquiring the lock; this is safe because outcome
// transitions and the logErrors clear are one-way and monotonic.
func (s *Status) Load() (outcome Outcome, logErrors bool) {
	word := atomic.LoadUint32((*uint32)(s)) &^ lockBit
	return outcomeOf(word), word&logErrorsClearedBit == 0
}

// TryComplete attempts the one-way Pending -> terminal transition. ok is
// false if the cell was already terminal (a double-completion attempt);
// callers must not re-dispatch handlers or mutate the stored outcome in
// that case. logErrors reports whether the cell's flag was still set at the
// moment of the transition.
func (s *Status) TryComplete(to Outcome) (ok bool, logErrors bool) {
	cs := s.acquire()
	if outcomeOf(cs) != Pending {
		s.release(cs)
		return false, false
	}

	ns := cs &^ outcomeSetMask
	switch to {
	case Succeeded:
		ns |= outcomeSucceeded
	case Failed:
		ns |= outcomeFailed
	default:
		s.release(cs)
		panic("state: TryComplete requires a terminal outcome")
	}

	logErrors = ns&logErrorsClearedBit == 0
	s.release(ns)
	return true, logErrors
}

// ClearLogErrors clears the logErrors flag; it is idempotent and safe to
// call regardless of the current outcome.
func (s *Status) ClearLogErrors() {
	cs := s.acquire()
	s.release(cs | logErrorsClearedBit)
}

// RegisterIfPending reports whether the cell is still Pending, and if so,
// atomically clears the logErrors flag as a side effect of registering a
// handler (matching the semantics of attaching a completion handler while
// pending). Callers use the returned bool to decide whether to append the
// handler (true) or invoke it synchronously against the already-terminal
// outcome (false).
func (s *Status) RegisterIfPending() (pending bool) {
	cs := s.acquire()
	if outcomeOf(cs) != Pending {
		s.release(cs)
		return false
	}
	s.release(cs | logErrorsClearedBit)
	return true
}
