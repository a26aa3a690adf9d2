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

import "sort"

var directiveKinds = map[string]NodeKind{
	"version":   NodeVersion,
	"extension": NodeExtension,
	"define":    NodeDefine,
	"ifdef":     NodeIfDef,
	"ifndef":    NodeIfNDef,
	"if":        NodeIf,
	"else":      NodeElse,
	"endif":     NodeEndIf,
	"undef":     NodeUndef,
	"error":     NodeError,
	"include":   NodeInclude,
	"line":      NodeLine,
}

// Parse builds the lossless tree for src. The returned error list is sorted
// by start position; parsing never aborts.
func Parse(src string) Ast {
	lx := newLexer(src)
	tokens := lx.tokenize()

	var root []Element
	atLineStart := true
	for i := 0; i < len(tokens); {
		tok := tokens[i]
		if atLineStart && tok.Kind == TokenSymbol && tok.Text == "#" {
			node, next := groupDirective(tokens, i)
			root = append(root, node)
			i = next
			atLineStart = true
			continue
		}
		switch tok.Kind {
		case TokenNewline:
			atLineStart = true
		case TokenWhitespace, TokenComment, TokenContinueLine:
			// Trivia does not change line-start status.
		default:
			atLineStart = false
		}
		root = append(root, tok)
		i++
	}

	errors := lx.errors
	sort.SliceStable(errors, func(i, j int) bool {
		return errors[i].Pos.Start < errors[j].Pos.Start
	})

	return Ast{Root: root, Errors: errors, Lines: NewLineMap(src)}
}

// groupDirective collects the tokens of one '#' line, starting at the hash,
// into a directive node. The terminating newline belongs to the node; line
// continuations extend it.
func groupDirective(tokens []Token, start int) (*Node, int) {
	i := start
	children := []Token{tokens[i]} // the '#'
	i++

	// The directive name is the first non-trivia token after the hash. A
	// newline before any name makes the directive empty.
	kind := NodeEmpty
	named := false
	for ; i < len(tokens); i++ {
		tok := tokens[i]
		children = append(children, tok)
		if tok.Kind == TokenNewline {
			i++
			break
		}
		if !named && !tok.Trivia() {
			named = true
			kind = NodeUnknown
			if tok.Kind == TokenIdent {
				if k, ok := directiveKinds[tok.Text]; ok {
					kind = k
				}
			}
		}
	}

	node := &Node{
		Kind: kind,
		Pos: Span{
			Start: children[0].Pos.Start,
			End:   children[len(children)-1].Pos.End,
		},
		Children: children,
	}
	return node, i
}
