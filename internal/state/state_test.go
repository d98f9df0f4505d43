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

package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsPendingWithLogging(t *testing.T) {
	s := New()
	outcome, logErrors := s.Load()
	assert.Equal(t, Pending, outcome)
	assert.True(t, logErrors)
}

func TestTryCompleteOnce(t *testing.T) {
	s := New()

	ok, logErrors := s.TryComplete(Succeeded)
	require.True(t, ok)
	assert.True(t, logErrors)

	outcome, _ := s.Load()
	assert.Equal(t, Succeeded, outcome)

	ok, _ = s.TryComplete(Failed)
	assert.False(t, ok, "a second completion must be rejected")

	outcome, _ = s.Load()
	assert.Equal(t, Succeeded, outcome, "the outcome must not change on double-completion")
}

func TestRegisterIfPendingClearsLogErrors(t *testing.T) {
	s := New()

	pending := s.RegisterIfPending()
	assert.True(t, pending)

	_, logErrors := s.Load()
	assert.False(t, logErrors)
}

func TestRegisterIfPendingAfterTerminal(t *testing.T) {
	s := New()
	_, _ = s.TryComplete(Failed)

	pending := s.RegisterIfPending()
	assert.False(t, pending)
}

func TestTryCompleteIsRaceFree(t *testing.T) {
	const n = 64
	s := New()

	var wg sync.WaitGroup
	results := make([]bool, n)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			ok, _ := s.TryComplete(Succeeded)
			results[i] = ok
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, ok := range results {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one TryComplete call must win")
}
