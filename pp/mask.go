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

// maskState is the inclusion state of one open conditional level.
type maskState int

const (
	// No group of this level has been included yet.
	maskNone maskState = iota
	// The current group is included.
	maskActive
	// A prior group was included; the current and remaining groups are not.
	maskOne
)

// maskFrame is one open #if* level. elseSeen guards against multiple #else
// directives on the same level, also inside excluded regions.
type maskFrame struct {
	state    maskState
	elseSeen bool
}

// maskStack tracks the nesting of conditional-inclusion directives of one
// file. Its depth equals the number of open conditionals not yet closed by
// #endif.
type maskStack struct {
	frames []maskFrame
}

// active returns the emit bit: true iff every open level includes its
// current group.
func (m *maskStack) active() bool {
	for _, frame := range m.frames {
		if frame.state != maskActive {
			return false
		}
	}
	return true
}

// depth returns the number of open conditionals.
func (m *maskStack) depth() int { return len(m.frames) }

// push opens a new conditional level. included is the predicate result; it
// is only honored while the surrounding state emits, otherwise the new
// level starts excluded with no group included yet.
func (m *maskStack) push(included bool) {
	state := maskNone
	if m.active() && included {
		state = maskActive
	}
	m.frames = append(m.frames, maskFrame{state: state})
}

// pushExcluded opens a level inside an excluded region, or for an #if whose
// expression is not evaluated.
func (m *maskStack) pushExcluded() {
	m.frames = append(m.frames, maskFrame{state: maskNone})
}

// flipElse processes an #else. It reports false for an extra #else (no open
// level, or a second #else on the same level); the stack is unchanged then.
func (m *maskStack) flipElse() bool {
	if len(m.frames) == 0 {
		return false
	}
	top := &m.frames[len(m.frames)-1]
	if top.elseSeen {
		return false
	}
	top.elseSeen = true
	switch top.state {
	case maskNone:
		// The else group is included iff the enclosing levels emit.
		if m.outerActive() {
			top.state = maskActive
		}
	case maskActive:
		top.state = maskOne
	case maskOne:
		// Stays excluded.
	}
	return true
}

// pop closes the top level on #endif. It reports false when no level is
// open.
func (m *maskStack) pop() bool {
	if len(m.frames) == 0 {
		return false
	}
	m.frames = m.frames[:len(m.frames)-1]
	return true
}

// outerActive reports whether every level below the top one emits.
func (m *maskStack) outerActive() bool {
	for _, frame := range m.frames[:len(m.frames)-1] {
		if frame.state != maskActive {
			return false
		}
	}
	return true
}
