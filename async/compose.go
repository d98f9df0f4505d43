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

// Composition operators build a new Deferred Value whose outcome is derived
// from an existing one. They are package-level functions rather than methods
// because a method cannot introduce a type parameter beyond its receiver's;
// V->X transformations need one.

// Transform returns a cell that succeeds with f(v) once d succeeds with v,
// and fails with d's cause (unchanged) once d fails. A panic raised by f is
// reported as a transformer fault and fails the result, never the source
// cell d.
func Transform[V, X any](d *Deferred[V], f func(V) X) *Deferred[X] {
	out := New[X]()
	d.OnComplete(CompletionHandler[V]{
		Success: func(v V) {
			x, err := applyTransform(f, v)
			if err != nil {
				out.Fail(err)
				return
			}
			out.Succeed(x)
		},
		Failure: func(err error) {
			out.Fail(err)
		},
	})
	return out
}

func applyTransform[V, X any](f func(V) X, v V) (x X, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()
	x = f(v)
	return x, nil
}

// FlatTransform returns a cell that adopts the outcome of f(v) once d
// succeeds with v, and fails with d's cause once d fails. A panic raised by
// f is reported as a flat-transformer fault and fails the result.
func FlatTransform[V, X any](d *Deferred[V], f func(V) *Deferred[X]) *Deferred[X] {
	out := New[X]()
	d.OnComplete(CompletionHandler[V]{
		Success: func(v V) {
			next, err := applyFlatTransform(f, v)
			if err != nil {
				out.Fail(err)
				return
			}
			next.OnComplete(CompletionHandler[X]{
				Success: out.Succeed,
				Failure: out.Fail,
			})
		},
		Failure: func(err error) {
			out.Fail(err)
		},
	})
	return out
}

func applyFlatTransform[V, X any](f func(V) *Deferred[X], v V) (next *Deferred[X], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()
	next = f(v)
	if next == nil {
		err = ErrConsumerResult
	}
	return next, err
}

// Chain wires both success and failure of d onto target. Unlike Transform
// and FlatTransform, it creates no new cell: target adopts d's outcome
// verbatim, whatever it turns out to be.
func Chain[V any](d *Deferred[V], target *Deferred[V]) {
	d.OnComplete(CompletionHandler[V]{
		Success: target.Succeed,
		Failure: target.Fail,
	})
}

// MapChain is like Chain, but transforms the success value with f before
// handing it to target. A panic raised by f fails target as a transformer
// fault; d's own failure cause propagates to target unchanged.
func MapChain[V, X any](d *Deferred[V], target *Deferred[X], f func(V) X) {
	d.OnComplete(CompletionHandler[V]{
		Success: func(v V) {
			x, err := applyTransform(f, v)
			if err != nil {
				target.Fail(err)
				return
			}
			target.Succeed(x)
		},
		Failure: target.Fail,
	})
}

// FailChain runs successFn(v) for its side effects once d succeeds, failing
// target if successFn panics, and propagates d's failure cause to target
// unchanged. It returns d itself, so callers can keep composing off the
// receiver rather than off a derived cell.
func FailChain[V, X any](d *Deferred[V], target *Deferred[X], successFn func(v V)) *Deferred[V] {
	d.OnComplete(CompletionHandler[V]{
		Success: func(v V) {
			if err := runSideEffect(successFn, v); err != nil {
				target.Fail(err)
			}
		},
		Failure: target.Fail,
	})
	return d
}

func runSideEffect[V any](f func(V), v V) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()
	f(v)
	return nil
}
