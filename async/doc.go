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

// Package async provides the Deferred Value, a thread-safe, single-assignment
// container for a value computed elsewhere.
//
// A Deferred Value starts out Pending, and is moved to exactly one of two
// terminal states, Succeeded or Failed, by whichever goroutine performs the
// underlying work. Consumers attach completion handlers, which fire once,
// either on the goroutine that completes the cell (if they were registered
// while it was still pending) or synchronously on the registering goroutine
// (if the cell was already terminal).
//
// The package owns no goroutines and no executor; it is a rendezvous point
// used by whatever the host embeds to actually run work. Composition
// (Transform, FlatTransform, Chain, MapChain, FailChain) and aggregation
// (Sequence, Barrier) are built entirely out of completion handlers attached
// to existing cells — no new scheduling primitive is introduced.
//
// Unhandled failures are reported to a FailureSink, an interface this
// package declares but never implements; the host wires a concrete sink
// (see the health package) in at process scope.
package async
