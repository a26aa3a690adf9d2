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
	"github.com/stretchr/testify/require"
)

// expand processes src in a fresh processor and returns the concatenated
// token text plus every reported error kind.
func expand(t *testing.T, src string) (string, []ErrorKind) {
	t.Helper()
	p := NewProcessor(DefaultState(), NewMemFileSystem(nil))
	events := p.ProcessString(src, "expand_test.glsl").Collect()
	return tokenText(events), errorKinds(events)
}

func tokenText(events []Event) string {
	var out string
	for _, event := range events {
		if tok, ok := event.(TokenEvent); ok {
			out += tok.Text
		}
	}
	return out
}

func errorKinds(events []Event) []ErrorKind {
	var kinds []ErrorKind
	for _, event := range events {
		if e, ok := event.(ErrorEvent); ok {
			kinds = append(kinds, e.Diag.Kind)
		}
	}
	return kinds
}

func TestExpandObjectMacro(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "#define X 42\nX", "42"},
		{"undefined stays verbatim", "Y", "Y"},
		{"multi token body", "#define V vec3(1.0)\nV;", "vec3(1.0);"},
		{"nested", "#define A B\n#define B 7\nA", "7"},
		{"redefinition wins", "#define X 1\n#define X 2\nX", "2"},
		{"undef removes", "#define X 1\n#undef X\nX", "X"},
		{"empty body", "#define NOTHING\na NOTHING b", "a  b"},
		{"GL_core_profile", "GL_core_profile", "1"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			text, errors := expand(t, testCase.input)
			assert.Equal(t, testCase.expected, text)
			assert.Empty(t, errors)
		})
	}
}

func TestExpandFunctionMacro(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"two args", "#define ADD(a, b) a + b\nADD(1, 2)", "1 + 2"},
		{"no args", "#define ONE() 1\nONE()", "1"},
		{"nested parens", "#define ID(x) x\nID((a, b))", "(a, b)"},
		{"nested call", "#define ID(x) x\nID(ID(q))", "q"},
		{"arg used twice", "#define SQ(x) x*x\nSQ(n)", "n*n"},
		{"not a call", "#define F(x) x\nF + 1", "F + 1"},
		{"call on next line", "#define F(x) [x]\nF\n(7)", "[7]"},
		{"args expand first", "#define V 9\n#define ID(x) x\nID(V)", "9"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			text, errors := expand(t, testCase.input)
			assert.Equal(t, testCase.expected, text)
			assert.Empty(t, errors)
		})
	}
}

func TestExpandRecursionIsPainted(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"self reference", "#define A A\nA", "A"},
		{"mutual reference", "#define A B\n#define B A\nA", "A"},
		{"self in body", "#define N N+1\nN", "N+1"},
		{"function self", "#define F(x) F(x)\nF(1)", "F(1)"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			text, errors := expand(t, testCase.input)
			assert.Equal(t, testCase.expected, text)
			assert.Empty(t, errors)
		})
	}
}

func TestExpandTokenPasting(t *testing.T) {
	text, errors := expand(t, "#define GLUE(a, b) a ## b\nGLUE(foo, bar)")
	assert.Equal(t, "foobar", text)
	assert.Empty(t, errors)

	// Pasting builds a name that only then expands.
	text, errors = expand(t, "#define foobar 3\n#define GLUE(a, b) a ## b\nGLUE(foo, bar)")
	assert.Equal(t, "3", text)
	assert.Empty(t, errors)
}

func TestExpandArityMismatch(t *testing.T) {
	_, errors := expand(t, "#define ADD(a, b) a + b\nADD(1)")
	require.Len(t, errors, 1)
	assert.Equal(t, ArgArityMismatch, errors[0])

	_, errors = expand(t, "#define ONE() 1\nONE(x)")
	require.Len(t, errors, 1)
	assert.Equal(t, ArgArityMismatch, errors[0])
}

func TestExpandUnterminatedCall(t *testing.T) {
	text, errors := expand(t, "#define F(x) x\nF(1")
	require.Len(t, errors, 1)
	assert.Equal(t, UnterminatedMacroCall, errors[0])
	assert.Equal(t, "F", text)
}

func TestExpandBuiltins(t *testing.T) {
	text, _ := expand(t, "__LINE__")
	assert.Equal(t, "1", text)

	text, _ = expand(t, "\n\n__LINE__")
	assert.Equal(t, "\n\n3", text)

	text, _ = expand(t, "__FILE__")
	assert.Equal(t, "1", text)

	text, _ = expand(t, "__VERSION__")
	assert.Equal(t, "110", text)

	text, _ = expand(t, "#version 450\n__VERSION__")
	assert.Equal(t, "450", text)
}

func TestExpandLineDirective(t *testing.T) {
	text, _ := expand(t, "#line 100\n__LINE__")
	assert.Equal(t, "100", text)

	// The second operand overrides __FILE__.
	text, _ = expand(t, "#line 5 33\n__FILE__ __LINE__")
	assert.Equal(t, "33 5", text)
}

func TestExpandMacroInsideExcludedBlock(t *testing.T) {
	text, errors := expand(t, "#define X 1\n#ifdef NOPE\nX\n#endif\nX")
	assert.Equal(t, "1", text)
	assert.Empty(t, errors)
}
