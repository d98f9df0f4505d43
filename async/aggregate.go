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

// Completer is the subset of Deferred[V]'s surface that doesn't depend on
// V, letting Barrier accept a heterogeneous mix of cell types.
type Completer interface {
	// OnTerminal registers f to run once the cell reaches a terminal
	// state, with the failure cause if any, nil on success. Like
	// OnComplete, f runs synchronously and immediately if the cell is
	// already terminal.
	OnTerminal(f func(err error))

	IsCompleted() bool
}

// OnTerminal implements Completer.
func (d *Deferred[V]) OnTerminal(f func(err error)) {
	d.OnComplete(CompletionHandler[V]{
		Success: func(V) { f(nil) },
		Failure: f,
	})
}

// Barrier returns a cell that succeeds once every cell in cells has reached
// a terminal state, regardless of outcome. Barrier's own outcome is always
// eventual success; callers inspect each input individually for its own
// failure. An empty cells list yields an already-succeeded barrier.
func Barrier(cells ...Completer) *Deferred[struct{}] {
	out := New[struct{}]()
	if len(cells) == 0 {
		out.Succeed(struct{}{})
		return out
	}

	var (
		mu        sync.Mutex
		remaining = len(cells)
	)
	for _, c := range cells {
		c.OnTerminal(func(error) {
			mu.Lock()
			remaining--
			done := remaining == 0
			mu.Unlock()
			if done {
				out.Succeed(struct{}{})
			}
		})
	}
	return out
}

// Sequence returns a cell that succeeds with the slice of every cell's
// value, in the same order as cells, once all of them succeed. It fails
// with the first failure cause observed — "first" meaning the first one
// this goroutine pool happens to observe, since the inputs may complete
// concurrently in any order; ties are broken by whichever failure first sets
// Sequence's own failed flag under its mutex, and every later one is
// silently dropped there without reaching out.Fail. A failure in one input never
// waits for the others to finish before propagating.
func Sequence[V any](cells ...*Deferred[V]) *Deferred[[]V] {
	out := New[[]V]()
	if len(cells) == 0 {
		out.Succeed(nil)
		return out
	}

	var (
		mu        sync.Mutex
		values    = make([]V, len(cells))
		remaining = len(cells)
		failed    bool
	)
	for i, c := range cells {
		i := i
		c.OnComplete(CompletionHandler[V]{
			Success: func(v V) {
				mu.Lock()
				values[i] = v
				remaining--
				done := remaining == 0 && !failed
				mu.Unlock()
				if done {
					out.Succeed(values)
				}
			},
			Failure: func(err error) {
				mu.Lock()
				already := failed
				failed = true
				mu.Unlock()
				if !already {
					out.Fail(err)
				}
			},
		})
	}
	return out
}
