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
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformAppliesFunctionOnSuccess(t *testing.T) {
	d := New[int]()
	out := Transform(d, func(v int) string { return strconv.Itoa(v * 2) })
	d.Succeed(21)

	v, ok := out.Peek()
	require.True(t, ok)
	assert.Equal(t, "42", v)
}

func TestTransformIdentityRoundTrips(t *testing.T) {
	d := New[int]()
	out := Transform(d, func(v int) int { return v })
	d.Succeed(5)

	v, ok := out.Peek()
	require.True(t, ok)
	assert.Equal(t, 5, v)
}

func TestTransformPropagatesFailureUnchanged(t *testing.T) {
	cause := errors.New("boom")
	d := New[int]()
	out := Transform(d, func(v int) string { return strconv.Itoa(v) })
	d.Fail(cause)

	assert.ErrorIs(t, out.Failure(), cause)
}

func TestTransformMapperPanicFailsResultNotSource(t *testing.T) {
	d := New[int]()
	out := Transform(d, func(int) string { panic("transformer fault") })
	d.Succeed(1)

	assert.True(t, d.IsSuccessful(), "the source cell is unaffected by a transformer fault")
	require.Error(t, out.Failure())
	var pe *PanicError
	assert.ErrorAs(t, out.Failure(), &pe)
}

func TestFlatTransformAdoptsInnerOutcome(t *testing.T) {
	d := New[int]()
	out := FlatTransform(d, func(v int) *Deferred[string] {
		return Succeeded(strconv.Itoa(v))
	})
	d.Succeed(7)

	v, ok := out.Peek()
	require.True(t, ok)
	assert.Equal(t, "7", v)
}

func TestFlatTransformInnerFailurePropagates(t *testing.T) {
	cause := errors.New("inner boom")
	d := New[int]()
	out := FlatTransform(d, func(int) *Deferred[string] {
		return Failed[string](cause)
	})
	d.Succeed(1)

	assert.ErrorIs(t, out.Failure(), cause)
}

func TestFlatTransformOuterFailureSkipsMapper(t *testing.T) {
	cause := errors.New("outer boom")
	called := false
	d := New[int]()
	out := FlatTransform(d, func(int) *Deferred[string] {
		called = true
		return Succeeded("unused")
	})
	d.Fail(cause)

	assert.False(t, called)
	assert.ErrorIs(t, out.Failure(), cause)
}

func TestChainPropagatesSuccessToTarget(t *testing.T) {
	d := New[int]()
	target := New[int]()
	Chain(d, target)
	d.Succeed(5)

	v, ok := target.Peek()
	require.True(t, ok)
	assert.Equal(t, 5, v)
}

func TestChainPropagatesFailureToTarget(t *testing.T) {
	cause := errors.New("boom")
	d := New[int]()
	target := New[int]()
	Chain(d, target)
	d.Fail(cause)

	assert.ErrorIs(t, target.Failure(), cause)
}

func TestChainThenAwaitTargetMatchesAwaitingReceiver(t *testing.T) {
	d := New[int]()
	target := New[int]()
	Chain(d, target)
	d.Succeed(7)

	target.Await(0)
	assert.Equal(t, d.IsSuccessful(), target.IsSuccessful())
	dv, _ := d.Peek()
	tv, _ := target.Peek()
	assert.Equal(t, dv, tv)
}

func TestMapChainTransformsValueIntoTarget(t *testing.T) {
	d := New[int]()
	target := New[string]()
	MapChain(d, target, func(v int) string { return strconv.Itoa(v + 1) })
	d.Succeed(1)

	v, ok := target.Peek()
	require.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestMapChainMapperPanicFailsTarget(t *testing.T) {
	d := New[int]()
	target := New[string]()
	MapChain(d, target, func(int) string { panic("transformer fault") })
	d.Succeed(1)

	require.Error(t, target.Failure())
	var pe *PanicError
	assert.ErrorAs(t, target.Failure(), &pe)
}

func TestMapChainPropagatesFailureToTargetUnchanged(t *testing.T) {
	cause := errors.New("boom")
	called := false
	d := New[int]()
	target := New[string]()
	MapChain(d, target, func(int) string {
		called = true
		return "unused"
	})
	d.Fail(cause)

	assert.False(t, called)
	assert.ErrorIs(t, target.Failure(), cause)
}

func TestFailChainRunsSideEffectAndReturnsReceiver(t *testing.T) {
	var observed int
	d := New[int]()
	target := New[string]()
	out := FailChain(d, target, func(v int) { observed = v })
	d.Succeed(5)

	assert.Same(t, d, out)
	assert.Equal(t, 5, observed)
	assert.False(t, target.IsCompleted(), "target is only completed by a failure or a side-effect panic")
}

func TestFailChainSideEffectPanicFailsTarget(t *testing.T) {
	d := New[int]()
	target := New[string]()
	FailChain(d, target, func(int) { panic("side effect fault") })
	d.Succeed(1)

	require.Error(t, target.Failure())
	var pe *PanicError
	assert.ErrorAs(t, target.Failure(), &pe)
}

func TestFailChainPropagatesFailureToTarget(t *testing.T) {
	cause := errors.New("boom")
	called := false
	d := New[int]()
	target := New[string]()
	FailChain(d, target, func(int) { called = true })
	d.Fail(cause)

	assert.False(t, called)
	assert.ErrorIs(t, target.Failure(), cause)
}
