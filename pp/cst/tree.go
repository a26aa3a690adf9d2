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

// Package cst builds the lossless concrete syntax tree consumed by the
// preprocessor. The tree preserves every byte of the input: concatenating
// the text of all tokens, in order, reconstructs the source exactly.
//
// The tree is shallow. The root node owns a flat list of elements, where an
// element is either a terminal Token or a directive Node grouping the tokens
// of one '#' line. Nested structure (conditional blocks, macro calls) is the
// preprocessor's business, not the tree's.
package cst

import "fmt"

// NodeKind identifies the directive a Node stands for. The set is closed;
// directives the grouper does not recognise get NodeUnknown.
type NodeKind int

const (
	// A lone '#' with no directive name. Legal and ignored.
	NodeEmpty NodeKind = iota
	NodeVersion
	NodeExtension
	NodeDefine
	NodeIfDef
	NodeIfNDef
	NodeIf
	NodeElse
	NodeEndIf
	NodeUndef
	NodeError
	NodeInclude
	NodeLine
	// A '#' line whose directive name is not recognised.
	NodeUnknown
)

var nodeKindNames = map[NodeKind]string{
	NodeEmpty:     "empty",
	NodeVersion:   "version",
	NodeExtension: "extension",
	NodeDefine:    "define",
	NodeIfDef:     "ifdef",
	NodeIfNDef:    "ifndef",
	NodeIf:        "if",
	NodeElse:      "else",
	NodeEndIf:     "endif",
	NodeUndef:     "undef",
	NodeError:     "error",
	NodeInclude:   "include",
	NodeLine:      "line",
	NodeUnknown:   "unknown",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("node(%d)", int(k))
}

// Element is either a Token or a *Node. The interface is sealed; no other
// implementations exist.
type Element interface {
	Span() Span
	element()
}

// Node is a directive line: the '#' token, the directive name and every
// token up to and including the terminating newline (or end of file).
// Line continuations extend the node across physical lines.
type Node struct {
	Kind     NodeKind
	Pos      Span
	Children []Token
}

func (n *Node) Span() Span { return n.Pos }

func (n *Node) element() {}

// Arguments returns the non-trivia tokens following the directive name.
func (n *Node) Arguments() []Token {
	args := make([]Token, 0, len(n.Children))
	seenName := false
	for _, tok := range n.Children {
		if tok.Trivia() {
			continue
		}
		if !seenName {
			// Skip the '#' and, for named directives, the directive name.
			if tok.Kind == TokenSymbol && tok.Text == "#" {
				continue
			}
			seenName = true
			if n.Kind != NodeEmpty && n.Kind != NodeUnknown {
				continue
			}
		}
		args = append(args, tok)
	}
	return args
}

// Text reconstructs the source text covered by the node.
func (n *Node) Text() string {
	var out []byte
	for _, tok := range n.Children {
		out = append(out, tok.Text...)
	}
	return string(out)
}

// ParseError is a malformed-input diagnostic produced while building the
// tree. Errors are reported in source order.
type ParseError struct {
	Pos Span
	Msg string
}

func (e ParseError) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

// Ast is the result of parsing one source text.
type Ast struct {
	Root   []Element
	Errors []ParseError
	Lines  *LineMap
}
