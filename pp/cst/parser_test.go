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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodeKinds(ast Ast) []NodeKind {
	var kinds []NodeKind
	for _, element := range ast.Root {
		if node, ok := element.(*Node); ok {
			kinds = append(kinds, node.Kind)
		}
	}
	return kinds
}

func TestParseDirectiveKinds(t *testing.T) {
	testCases := []struct {
		input    string
		expected []NodeKind
	}{
		{"#version 450\n", []NodeKind{NodeVersion}},
		{"#extension all : disable\n", []NodeKind{NodeExtension}},
		{"#define X 1\n#undef X\n", []NodeKind{NodeDefine, NodeUndef}},
		{"#ifdef A\n#else\n#endif\n", []NodeKind{NodeIfDef, NodeElse, NodeEndIf}},
		{"#ifndef A\n#endif\n", []NodeKind{NodeIfNDef, NodeEndIf}},
		{"#if 1\n#endif\n", []NodeKind{NodeIf, NodeEndIf}},
		{"#error bad\n", []NodeKind{NodeError}},
		{"#include \"a.glsl\"\n", []NodeKind{NodeInclude}},
		{"#line 7\n", []NodeKind{NodeLine}},
		{"#\n", []NodeKind{NodeEmpty}},
		{"# \n", []NodeKind{NodeEmpty}},
		{"#pragma thing\n", []NodeKind{NodeUnknown}},
		// A hash in the middle of a line is not a directive.
		{"a # b\n", nil},
	}

	for _, testCase := range testCases {
		t.Run(strings.ReplaceAll(testCase.input, "\n", ";"), func(t *testing.T) {
			ast := Parse(testCase.input)
			assert.Equal(t, testCase.expected, nodeKinds(ast))
		})
	}
}

func TestParseIndentedDirective(t *testing.T) {
	// Horizontal whitespace before and after the hash is allowed.
	ast := Parse("   #  define X 1\n")
	kinds := nodeKinds(ast)
	require.Len(t, kinds, 1)
	assert.Equal(t, NodeDefine, kinds[0])
}

func TestParseContinuedDirective(t *testing.T) {
	// A line continuation extends the directive to the next physical line.
	ast := Parse("#define X \\\n 1\nY\n")
	kinds := nodeKinds(ast)
	require.Len(t, kinds, 1)

	node := ast.Root[0].(*Node)
	assert.Equal(t, NodeDefine, node.Kind)
	assert.Contains(t, node.Text(), "1")

	// Y is an ordinary token outside the directive.
	var idents []string
	for _, element := range ast.Root[1:] {
		if tok, ok := element.(Token); ok && tok.Kind == TokenIdent {
			idents = append(idents, tok.Text)
		}
	}
	assert.Equal(t, []string{"Y"}, idents)
}

func TestParseArguments(t *testing.T) {
	ast := Parse("#extension GL_OES_texture_3D : enable\n")
	node := ast.Root[0].(*Node)
	args := node.Arguments()
	require.Len(t, args, 3)
	assert.Equal(t, "GL_OES_texture_3D", args[0].Text)
	assert.Equal(t, ":", args[1].Text)
	assert.Equal(t, "enable", args[2].Text)
}

func TestParseLossless(t *testing.T) {
	inputs := []string{
		"#version 450 core\nvoid main() {}\n",
		"a\n#define M(x) x*2\nM(3)\n// tail",
		"#ifdef A\nx\n#endif",
	}
	for _, input := range inputs {
		ast := Parse(input)
		var out strings.Builder
		for _, element := range ast.Root {
			switch el := element.(type) {
			case Token:
				out.WriteString(el.Text)
			case *Node:
				out.WriteString(el.Text())
			}
		}
		assert.Equal(t, input, out.String())
	}
}

func TestParseErrorsSorted(t *testing.T) {
	ast := Parse("\x01 \x02 /* open")
	require.NotEmpty(t, ast.Errors)
	for i := 1; i < len(ast.Errors); i++ {
		assert.LessOrEqual(t, ast.Errors[i-1].Pos.Start, ast.Errors[i].Pos.Start)
	}
}

func TestLineMap(t *testing.T) {
	m := NewLineMap("ab\ncde\n\nf")
	testCases := []struct {
		offset       int
		line, column int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3},  // the newline itself
		{3, 2, 1},  // 'c'
		{6, 2, 4},  // newline after cde
		{7, 3, 1},  // empty line
		{8, 4, 1},  // 'f'
		{99, 4, 2}, // clamped past the end
	}
	for _, testCase := range testCases {
		line, column := m.Position(testCase.offset)
		assert.Equal(t, testCase.line, line, "offset %d line", testCase.offset)
		assert.Equal(t, testCase.column, column, "offset %d column", testCase.offset)
	}
	assert.Equal(t, 4, m.LineCount())
}
