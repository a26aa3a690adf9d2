// Copyright 2026 The glsl-lang Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskStackBasics(t *testing.T) {
	var m maskStack
	assert.True(t, m.active())
	assert.Equal(t, 0, m.depth())

	m.push(true)
	assert.True(t, m.active())

	m.push(false)
	assert.False(t, m.active())
	assert.Equal(t, 2, m.depth())

	assert.True(t, m.pop())
	assert.True(t, m.active())
	assert.True(t, m.pop())
	assert.False(t, m.pop())
}

func TestMaskStackElse(t *testing.T) {
	// Taken group, else flips to excluded.
	var m maskStack
	m.push(true)
	assert.True(t, m.active())
	assert.True(t, m.flipElse())
	assert.False(t, m.active())

	// Second else on the same level is an error; the stack is unchanged.
	assert.False(t, m.flipElse())
	assert.False(t, m.active())
	assert.Equal(t, 1, m.depth())
}

func TestMaskStackElseIncludesUntakenGroup(t *testing.T) {
	var m maskStack
	m.push(false)
	assert.False(t, m.active())
	assert.True(t, m.flipElse())
	assert.True(t, m.active())
}

func TestMaskStackElseUnderExcludedOuter(t *testing.T) {
	var m maskStack
	m.push(false)
	m.pushExcluded()
	assert.False(t, m.active())

	// The inner else stays excluded because the outer level is excluded.
	assert.True(t, m.flipElse())
	assert.False(t, m.active())

	m.pop()
	// The outer else is included again.
	assert.True(t, m.flipElse())
	assert.True(t, m.active())
}

func TestMaskStackNestedPredicates(t *testing.T) {
	var m maskStack
	m.push(true)
	m.push(true)
	assert.True(t, m.active())
	m.flipElse()
	assert.False(t, m.active())
	m.pop()
	assert.True(t, m.active())
}

func TestMaskStackElseOnEmpty(t *testing.T) {
	var m maskStack
	assert.False(t, m.flipElse())
	assert.False(t, m.pop())
}
