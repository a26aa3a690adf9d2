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

func TestTokenize(t *testing.T) {
	testCases := []struct {
		input    string
		expected []Token
	}{
		{
			input: "vec3 x;",
			expected: []Token{
				{Kind: TokenIdent, Text: "vec3"},
				{Kind: TokenWhitespace, Text: " "},
				{Kind: TokenIdent, Text: "x"},
				{Kind: TokenSymbol, Text: ";"},
			},
		},
		{
			input: "a##b",
			expected: []Token{
				{Kind: TokenIdent, Text: "a"},
				{Kind: TokenSymbol, Text: "##"},
				{Kind: TokenIdent, Text: "b"},
			},
		},
		{
			input: "x <<= 2",
			expected: []Token{
				{Kind: TokenIdent, Text: "x"},
				{Kind: TokenWhitespace, Text: " "},
				{Kind: TokenSymbol, Text: "<<="},
				{Kind: TokenWhitespace, Text: " "},
				{Kind: TokenNumber, Text: "2"},
			},
		},
		{
			input: "1.5e-3 0xFF 42u",
			expected: []Token{
				{Kind: TokenNumber, Text: "1.5e-3"},
				{Kind: TokenWhitespace, Text: " "},
				{Kind: TokenNumber, Text: "0xFF"},
				{Kind: TokenWhitespace, Text: " "},
				{Kind: TokenNumber, Text: "42u"},
			},
		},
		{
			input: "// comment\ncode",
			expected: []Token{
				{Kind: TokenComment, Text: "// comment"},
				{Kind: TokenNewline, Text: "\n"},
				{Kind: TokenIdent, Text: "code"},
			},
		},
		{
			input: "/* multi\nline */x",
			expected: []Token{
				{Kind: TokenComment, Text: "/* multi\nline */"},
				{Kind: TokenIdent, Text: "x"},
			},
		},
		{
			input: "a\\\nb",
			expected: []Token{
				{Kind: TokenIdent, Text: "a"},
				{Kind: TokenContinueLine, Text: "\\\n"},
				{Kind: TokenIdent, Text: "b"},
			},
		},
		{
			input: `"path/to/file.glsl"`,
			expected: []Token{
				{Kind: TokenString, Text: `"path/to/file.glsl"`},
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.input, func(t *testing.T) {
			tokens := Tokenize(testCase.input)
			require.Len(t, tokens, len(testCase.expected))
			for i, expected := range testCase.expected {
				assert.Equal(t, expected.Kind, tokens[i].Kind, "token %d kind", i)
				assert.Equal(t, expected.Text, tokens[i].Text, "token %d text", i)
			}
		})
	}
}

func TestTokenizeSpans(t *testing.T) {
	tokens := Tokenize("ab cd")
	require.Len(t, tokens, 3)
	assert.Equal(t, Span{Start: 0, End: 2}, tokens[0].Pos)
	assert.Equal(t, Span{Start: 2, End: 3}, tokens[1].Pos)
	assert.Equal(t, Span{Start: 3, End: 5}, tokens[2].Pos)
}

func TestTokenizeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"void main() {\n\tgl_Position = vec4(0.0);\n}\n",
		"a+b-c*d/e%f",
		"/* unterminated",
		"\"unterminated",
		"weird \x01 byte",
		"#define FOO(x) (x + 1)\nFOO(2)\n",
	}
	for _, input := range inputs {
		var out strings.Builder
		for _, tok := range Tokenize(input) {
			out.WriteString(tok.Text)
		}
		assert.Equal(t, input, out.String())
	}
}

func TestTokenizeUnterminatedComment(t *testing.T) {
	lx := newLexer("/* open")
	lx.tokenize()
	require.Len(t, lx.errors, 1)
	assert.Contains(t, lx.errors[0].Msg, "unterminated")
}
