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
	"strconv"

	"github.com/yorkie/glsl-lang/internal/collections"
	"github.com/yorkie/glsl-lang/pp/cst"
)

// hideSet is the set of macro names an expanded token must not re-expand.
// Carrying the set on each token implements the painted-identifier rule:
// during a macro's own rescan, occurrences of its name stay verbatim, so
// expansion terminates even for self-referential definitions.
type hideSet = collections.Set[string]

// xtoken is a token in flight through the expansion engine, together with
// the file it originates from and its hide set.
type xtoken struct {
	tok  cst.Token
	file FileId
	hide hideSet
}

func (x xtoken) span() Span { return spanIn(x.file, x.tok.Pos) }

func (x xtoken) hidden(name string) bool {
	return x.hide != nil && x.hide.Contains(name)
}

// withHide returns a copy of x whose hide set additionally contains every
// element of extra plus name. The input sets are not mutated.
func (x xtoken) withHide(extra hideSet, name string) xtoken {
	merged := make(hideSet, len(x.hide)+len(extra)+1)
	merged.Join(x.hide).Join(extra).Add(name)
	x.hide = merged
	return x
}

func intersectHide(a, b hideSet) hideSet {
	if a == nil || b == nil {
		return hideSet{}
	}
	return a.Intersect(b)
}

// reader is a stream of in-flight tokens with arbitrary lookahead. The
// lookahead makes "function-like macro name not followed by (" a
// no-consumption case.
type reader interface {
	// next consumes and returns one token; false at the end of the stream.
	next() (xtoken, bool)
	// peekAt returns the i-th unconsumed token without consuming anything.
	peekAt(i int) (xtoken, bool)
}

// listReader reads from a token list and falls through to a nested reader,
// which covers function macro calls whose parentheses close outside the
// replacement list being rescanned.
type listReader struct {
	list []xtoken
	rest reader
}

func (r *listReader) next() (xtoken, bool) {
	if len(r.list) > 0 {
		tok := r.list[0]
		r.list = r.list[1:]
		return tok, true
	}
	if r.rest != nil {
		return r.rest.next()
	}
	return xtoken{}, false
}

func (r *listReader) peekAt(i int) (xtoken, bool) {
	if i < len(r.list) {
		return r.list[i], true
	}
	if r.rest != nil {
		return r.rest.peekAt(i - len(r.list))
	}
	return xtoken{}, false
}

// peekNonTrivia returns the first significant unconsumed token and the
// number of tokens up to and including it.
func peekNonTrivia(r reader) (xtoken, int, bool) {
	for i := 0; ; i++ {
		tok, ok := r.peekAt(i)
		if !ok {
			return xtoken{}, 0, false
		}
		if !tok.tok.Trivia() {
			return tok, i + 1, true
		}
	}
}

func discard(r reader, n int) {
	for i := 0; i < n; i++ {
		r.next()
	}
}

// expander is the macro invocation engine. It is purely functional with
// respect to the definition table; directive handling owns all mutation.
type expander struct {
	state *ProcessorState
	// File currently being expanded; determines spans of synthesized
	// tokens and the value of __FILE__.
	file FileId
	// Value reported by __FILE__, normally the file id, overridden by the
	// second operand of #line.
	fileNumber int
	// 1-based line of the invocation site, already adjusted by #line.
	currentLine int
}

// invoke attempts to expand the identifier token ident. Tokens following it
// are read from r when the definition is function-like. expanded is false
// when ident has no definition, is painted, or is a function-like macro
// name without a call; r is unconsumed then and the caller emits ident
// verbatim.
func (e *expander) invoke(ident xtoken, r reader) (result []xtoken, expanded bool, diags []*Diagnostic) {
	def := e.state.Lookup(ident.tok.Text)
	if def == nil || ident.hidden(ident.tok.Text) {
		return nil, false, nil
	}
	out, consumed, diags := e.process(ident, r)
	if !consumed {
		return nil, false, diags
	}
	return out, true, diags
}

// process expands one token known to be under consideration, reading any
// call arguments from r. consumed is false only for the non-call use of a
// function-like macro name.
func (e *expander) process(tok xtoken, r reader) (result []xtoken, consumed bool, diags []*Diagnostic) {
	name := tok.tok.Text
	def := e.state.Lookup(name)
	if def == nil || tok.hidden(name) {
		return []xtoken{tok}, true, nil
	}

	switch d := def.(type) {
	case *builtinDefinition:
		return []xtoken{e.expandBuiltin(d, tok)}, true, nil

	case *RegularDefinition:
		set := tok.hide
		var args [][]xtoken
		if d.Define.Function {
			next, skip, ok := peekNonTrivia(r)
			if !ok || next.tok.Kind != cst.TokenSymbol || next.tok.Text != "(" {
				// Not a call; the name stays verbatim.
				return nil, false, nil
			}
			discard(r, skip)

			collected, last, diag := e.collectArgs(tok, r, len(d.Define.Params))
			if diag != nil {
				diags = append(diags, diag)
				if diag.Kind == UnterminatedMacroCall {
					return []xtoken{tok}, true, diags
				}
			}
			// Pre-expand every argument so substituted text is already in
			// final form. Trivia around an argument is not part of it.
			for i := range collected {
				arg := collected[i]
				for len(arg) > 0 && arg[0].tok.Trivia() {
					arg = arg[1:]
				}
				for len(arg) > 0 && arg[len(arg)-1].tok.Trivia() {
					arg = arg[:len(arg)-1]
				}
				expanded, _, argDiags := e.processList(arg, nil)
				collected[i] = expanded
				diags = append(diags, argDiags...)
			}
			args = collected
			set = intersectHide(tok.hide, last.hide)
		}

		list := e.substitute(d, args)
		for i := range list {
			list[i] = list[i].withHide(set, name)
		}
		list = pasteTokens(list)

		// Rescan: the replacement feeds back through the engine so nested
		// macros expand. Chaining r lets calls close beyond the list.
		out, _, rescanDiags := e.processList(list, r)
		diags = append(diags, rescanDiags...)
		return out, true, diags

	default:
		return []xtoken{tok}, true, nil
	}
}

// processList runs every token of list through the engine. The rest reader
// supplies continuation tokens for calls whose arguments extend past the
// list.
func (e *expander) processList(list []xtoken, rest reader) (result []xtoken, consumed bool, diags []*Diagnostic) {
	r := &listReader{list: list, rest: rest}
	for len(r.list) > 0 {
		tok, _ := r.next()
		if tok.tok.Kind != cst.TokenIdent {
			result = append(result, tok)
			continue
		}
		out, ok, tokDiags := e.process(tok, r)
		diags = append(diags, tokDiags...)
		if !ok {
			result = append(result, tok)
			continue
		}
		result = append(result, out...)
	}
	return result, true, diags
}

// collectArgs reads the argument lists of a function macro call, after the
// opening parenthesis has been consumed. Arguments are separated by
// top-level commas; parentheses inside arguments nest. last is the closing
// parenthesis token.
func (e *expander) collectArgs(ident xtoken, r reader, arity int) (args [][]xtoken, last xtoken, diag *Diagnostic) {
	var current []xtoken
	level := 0
	for {
		tok, ok := r.next()
		if !ok {
			return args, xtoken{}, &Diagnostic{
				Kind:  UnterminatedMacroCall,
				Span:  ident.span(),
				Ident: ident.tok.Text,
			}
		}
		if level == 0 && tok.tok.Kind == cst.TokenSymbol {
			switch tok.tok.Text {
			case ")":
				args = append(args, current)
				return e.checkArity(ident, args, arity, tok)
			case ",":
				args = append(args, current)
				current = nil
				continue
			}
		}
		if tok.tok.Kind == cst.TokenSymbol {
			switch tok.tok.Text {
			case "(":
				level++
			case ")":
				level--
			}
		}
		current = append(current, tok)
	}
}

// checkArity normalizes the empty call and validates the argument count,
// padding on mismatch so substitution can proceed.
func (e *expander) checkArity(ident xtoken, args [][]xtoken, arity int, last xtoken) ([][]xtoken, xtoken, *Diagnostic) {
	if arity == 0 && len(args) == 1 && allTrivia(args[0]) {
		args = args[:0]
	}
	if len(args) == arity {
		return args, last, nil
	}
	diag := &Diagnostic{
		Kind:  ArgArityMismatch,
		Span:  ident.span(),
		Ident: ident.tok.Text,
	}
	for len(args) < arity {
		args = append(args, nil)
	}
	return args[:arity], last, diag
}

func allTrivia(tokens []xtoken) bool {
	for _, tok := range tokens {
		if !tok.tok.Trivia() {
			return false
		}
	}
	return true
}

// substitute builds the replacement list of one invocation, replacing each
// parameter occurrence by the corresponding argument's token list.
func (e *expander) substitute(def *RegularDefinition, args [][]xtoken) []xtoken {
	params := def.Define.Params
	out := make([]xtoken, 0, len(def.Define.Replacement))
	for _, tok := range def.Define.Replacement {
		if tok.Kind == cst.TokenIdent {
			if i := paramIndex(params, tok.Text); i >= 0 {
				out = append(out, args[i]...)
				continue
			}
		}
		out = append(out, xtoken{tok: tok, file: def.File})
	}
	return out
}

func paramIndex(params []string, name string) int {
	for i, param := range params {
		if param == name {
			return i
		}
	}
	return -1
}

// pasteTokens applies the ## operator: the significant tokens on both sides
// of a ## merge into a single identifier, dropping the trivia in between.
func pasteTokens(list []xtoken) []xtoken {
	out := make([]xtoken, 0, len(list))
	for i := 0; i < len(list); i++ {
		tok := list[i]
		if tok.tok.Kind != cst.TokenSymbol || tok.tok.Text != "##" {
			out = append(out, tok)
			continue
		}
		left := lastSignificant(out)
		right, skip := nextSignificant(list, i+1)
		if left < 0 || right < 0 {
			// Dangling ##; leave it for downstream to reject.
			out = append(out, tok)
			continue
		}
		merged := out[left]
		merged.tok = cst.Token{
			Kind: cst.TokenIdent,
			Pos:  merged.tok.Pos,
			Text: merged.tok.Text + list[right].tok.Text,
		}
		merged.hide = merged.hide.Intersect(list[right].hide)
		out = append(out[:left], merged)
		i = skip
	}
	return out
}

func lastSignificant(list []xtoken) int {
	for i := len(list) - 1; i >= 0; i-- {
		if !list[i].tok.Trivia() {
			return i
		}
	}
	return -1
}

func nextSignificant(list []xtoken, from int) (index, skip int) {
	for i := from; i < len(list); i++ {
		if !list[i].tok.Trivia() {
			return i, i
		}
	}
	return -1, from
}

// expandBuiltin synthesizes the value of __LINE__, __FILE__ or __VERSION__
// at the invocation site.
func (e *expander) expandBuiltin(def *builtinDefinition, tok xtoken) xtoken {
	var value int
	switch def.kind {
	case builtinLine:
		value = e.currentLine
	case builtinFile:
		value = e.fileNumber
	case builtinVersion:
		value = e.state.version.Number
	}
	return xtoken{
		tok: cst.Token{
			Kind: cst.TokenNumber,
			Pos:  tok.tok.Pos,
			Text: strconv.Itoa(value),
		},
		file: e.file,
		hide: tok.hide,
	}
}
