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

import "strings"

// Multi-character symbols, longest first so that greedy matching picks the
// complete operator.
var multiSymbols = []string{
	"<<=", ">>=",
	"##", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||", "^^",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "++", "--",
}

const singleSymbols = "#()[]{},;:?~!<>=&|^+-*/%.\"'\\@$"

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// lexer breaks one source text into the terminal tokens of the tree. It
// never fails; unrecognised bytes become single-character symbol tokens so
// the result stays lossless.
type lexer struct {
	src    string
	offset int
	errors []ParseError
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

func (lx *lexer) rest() string { return lx.src[lx.offset:] }

func (lx *lexer) emit(kind TokenKind, length int) Token {
	tok := Token{
		Kind: kind,
		Pos:  Span{Start: lx.offset, End: lx.offset + length},
		Text: lx.src[lx.offset : lx.offset+length],
	}
	lx.offset += length
	return tok
}

func (lx *lexer) errorf(span Span, msg string) {
	lx.errors = append(lx.errors, ParseError{Pos: span, Msg: msg})
}

// next extracts one token. Returns false when the input is exhausted.
func (lx *lexer) next() (Token, bool) {
	rest := lx.rest()
	if len(rest) == 0 {
		return Token{}, false
	}

	switch b := rest[0]; {
	case b == '\n':
		return lx.emit(TokenNewline, 1), true
	case b == '\\':
		if length, ok := continuationLength(rest); ok {
			return lx.emit(TokenContinueLine, length), true
		}
		return lx.emit(TokenSymbol, 1), true
	case b == ' ' || b == '\t' || b == '\v' || b == '\f' || b == '\r':
		return lx.emit(TokenWhitespace, whitespaceLength(rest)), true
	case strings.HasPrefix(rest, "//"):
		return lx.emit(TokenComment, lineCommentLength(rest)), true
	case strings.HasPrefix(rest, "/*"):
		length, terminated := blockCommentLength(rest)
		tok := lx.emit(TokenComment, length)
		if !terminated {
			lx.errorf(tok.Pos, "unterminated block comment")
		}
		return tok, true
	case b == '"':
		if length, ok := stringLength(rest); ok {
			return lx.emit(TokenString, length), true
		}
		return lx.emit(TokenSymbol, 1), true
	case isIdentStart(b):
		return lx.emit(TokenIdent, identLength(rest)), true
	case isDigit(b) || (b == '.' && len(rest) > 1 && isDigit(rest[1])):
		return lx.emit(TokenNumber, numberLength(rest)), true
	default:
		for _, sym := range multiSymbols {
			if strings.HasPrefix(rest, sym) {
				return lx.emit(TokenSymbol, len(sym)), true
			}
		}
		if strings.IndexByte(singleSymbols, b) < 0 {
			tok := lx.emit(TokenSymbol, 1)
			lx.errorf(tok.Pos, "unexpected character "+tok.Text)
			return tok, true
		}
		return lx.emit(TokenSymbol, 1), true
	}
}

// Tokenize breaks src into terminal tokens without grouping directives.
// Used for token lists that arrive outside of a source file, e.g. command
// line macro definitions.
func Tokenize(src string) []Token {
	return newLexer(src).tokenize()
}

// tokenize consumes the whole input.
func (lx *lexer) tokenize() []Token {
	var tokens []Token
	for {
		tok, ok := lx.next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func whitespaceLength(rest string) int {
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case ' ', '\t', '\v', '\f', '\r':
		default:
			return i
		}
	}
	return len(rest)
}

// continuationLength matches a backslash, optional horizontal whitespace and
// a newline. Compilers warn about the whitespace but accept the splice.
func continuationLength(rest string) (int, bool) {
	i := 1
	for i < len(rest) {
		switch rest[i] {
		case ' ', '\t', '\v', '\f', '\r':
			i++
		case '\n':
			return i + 1, true
		default:
			return 0, false
		}
	}
	return 0, false
}

func lineCommentLength(rest string) int {
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		return i
	}
	return len(rest)
}

func blockCommentLength(rest string) (length int, terminated bool) {
	if i := strings.Index(rest[2:], "*/"); i >= 0 {
		return i + 4, true
	}
	return len(rest), false
}

// stringLength matches a double-quoted literal on a single line, with no
// escape processing; the shading language defines none.
func stringLength(rest string) (int, bool) {
	for i := 1; i < len(rest); i++ {
		switch rest[i] {
		case '"':
			return i + 1, true
		case '\n':
			return 0, false
		}
	}
	return 0, false
}

func identLength(rest string) int {
	for i := 1; i < len(rest); i++ {
		if !isIdentPart(rest[i]) {
			return i
		}
	}
	return len(rest)
}

// numberLength matches integer and floating point literals, including hex
// integers, exponents and type suffixes. The preprocessor only needs the
// extent; validation happens downstream.
func numberLength(rest string) int {
	i := 1
	for i < len(rest) {
		b := rest[i]
		switch {
		case isDigit(b) || isIdentPart(b) || b == '.':
			i++
		case (b == '+' || b == '-') && (rest[i-1] == 'e' || rest[i-1] == 'E'):
			i++
		default:
			return i
		}
	}
	return len(rest)
}
