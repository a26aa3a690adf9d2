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

package cst

import (
	"sort"
	"strings"
)

// LineMap answers "what is the 1-based line and column of byte offset N" for
// one source text. Columns count bytes, not runes.
type LineMap struct {
	// Byte offset of the first character of each line. lineStarts[0] == 0.
	lineStarts []int
	size       int
}

// NewLineMap indexes the newlines of src.
func NewLineMap(src string) *LineMap {
	starts := []int{0}
	for offset := 0; ; {
		i := strings.IndexByte(src[offset:], '\n')
		if i < 0 {
			break
		}
		offset += i + 1
		starts = append(starts, offset)
	}
	return &LineMap{lineStarts: starts, size: len(src)}
}

// Line returns the 1-based line containing offset. Offsets past the end of
// the text report the last line.
func (m *LineMap) Line(offset int) int {
	line, _ := m.Position(offset)
	return line
}

// Position returns the 1-based line and column of offset.
func (m *LineMap) Position(offset int) (line, column int) {
	if offset > m.size {
		offset = m.size
	}
	// First line start strictly greater than offset; the line is the one
	// before it.
	i := sort.SearchInts(m.lineStarts, offset+1)
	return i, offset - m.lineStarts[i-1] + 1
}

// LineCount returns the number of lines in the text. Empty text has one
// line.
func (m *LineMap) LineCount() int { return len(m.lineStarts) }
