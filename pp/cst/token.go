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

import "fmt"

// TokenKind classifies the terminal tokens of the preprocessor syntax tree.
type TokenKind int

const (
	// Identifiers and keywords. The preprocessor does not distinguish GLSL
	// keywords from ordinary identifiers.
	TokenIdent TokenKind = iota

	// Integer and floating point literals, including hex and octal forms.
	TokenNumber

	// One of the predefined fixed-size operator or punctuator sequences,
	// e.g. '(', '##', '&&', ';', or a single unrecognised byte.
	TokenSymbol

	// One or more whitespace characters, other than newlines.
	TokenWhitespace

	// Single newline character '\n'. Newlines mark the end of a directive.
	TokenNewline

	// Line continuation, a backslash followed by a newline, with optional
	// horizontal whitespace in between.
	TokenContinueLine

	// Single-line (//) or multi-line (/* */) comment.
	TokenComment

	// Double-quoted literal, confined to one line. The shading language has
	// no string type; quoted literals only appear as #include paths.
	TokenString
)

func (k TokenKind) String() string {
	switch k {
	case TokenIdent:
		return "ident"
	case TokenNumber:
		return "number"
	case TokenSymbol:
		return "symbol"
	case TokenWhitespace:
		return "whitespace"
	case TokenNewline:
		return "newline"
	case TokenContinueLine:
		return "continue-line"
	case TokenComment:
		return "comment"
	case TokenString:
		return "string"
	default:
		return fmt.Sprintf("token(%d)", int(k))
	}
}

// Span is a half-open byte range [Start, End) into the source text of one
// file.
type Span struct {
	Start, End int
}

func (s Span) Len() int { return s.End - s.Start }

func (s Span) String() string { return fmt.Sprintf("%d..%d", s.Start, s.End) }

// Token is a terminal element of the syntax tree. Text always equals the
// source slice covered by Span; the tree is lossless.
type Token struct {
	Kind TokenKind
	Pos  Span
	Text string
}

func (t Token) Span() Span { return t.Pos }

func (t Token) element() {}

// Trivia reports whether the token carries no preprocessing value of its
// own: whitespace, newlines, comments and line continuations.
func (t Token) Trivia() bool {
	switch t.Kind {
	case TokenWhitespace, TokenNewline, TokenContinueLine, TokenComment:
		return true
	default:
		return false
	}
}
