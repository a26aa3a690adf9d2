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
	"fmt"
	"strconv"
	"strings"

	"github.com/yorkie/glsl-lang/internal/collections"
	"github.com/yorkie/glsl-lang/pp/cst"
)

// DirectiveKind identifies the directive summarized by a DirectiveEvent.
type DirectiveKind int

const (
	DirectiveVersion DirectiveKind = iota
	DirectiveExtension
	DirectiveDefine
	DirectiveUndef
	DirectiveIfDef
	DirectiveIfNDef
	DirectiveElse
	DirectiveEndIf
	DirectiveInclude
	DirectiveLine
	DirectiveError
)

var directiveKindNames = map[DirectiveKind]string{
	DirectiveVersion:   "version",
	DirectiveExtension: "extension",
	DirectiveDefine:    "define",
	DirectiveUndef:     "undef",
	DirectiveIfDef:     "ifdef",
	DirectiveIfNDef:    "ifndef",
	DirectiveElse:      "else",
	DirectiveEndIf:     "endif",
	DirectiveInclude:   "include",
	DirectiveLine:      "line",
	DirectiveError:     "error",
}

func (k DirectiveKind) String() string {
	if name, ok := directiveKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("directive(%d)", int(k))
}

// Directive is a validated directive record, decoded from one tree node.
// The interface is sealed; the implementations below are the only ones.
type Directive interface {
	directiveKind() DirectiveKind
}

// VersionDirective is a decoded #version directive.
type VersionDirective struct {
	Version Version `json:"version"`
}

// ExtensionDirective is a decoded #extension directive.
type ExtensionDirective struct {
	Extension Extension `json:"extension"`
}

// DefineDirective is a decoded #define directive. Function is true for
// function-like macros, including ones with an empty parameter list.
// Replacement preserves the interior token sequence of the body, trimmed of
// surrounding trivia; it is never mutated after decoding, so definitions can
// be shared between processor states.
type DefineDirective struct {
	Name        string      `json:"name"`
	Function    bool        `json:"function,omitempty"`
	Params      []string    `json:"params,omitempty"`
	Replacement []cst.Token `json:"-"`
	Protected   bool        `json:"protected,omitempty"`
}

// UndefDirective is a decoded #undef directive.
type UndefDirective struct {
	Ident string `json:"ident"`
}

// IfDefDirective is a decoded #ifdef directive.
type IfDefDirective struct {
	Ident string `json:"ident"`
}

// IfNDefDirective is a decoded #ifndef directive.
type IfNDefDirective struct {
	Ident string `json:"ident"`
}

// ErrorMessage is a decoded #error directive. The message is the raw
// remainder of the line.
type ErrorMessage struct {
	Message string `json:"message"`
}

// IncludeDirective is a decoded #include directive. System is true for the
// angle-bracket form, which searches the configured paths only; the quoted
// form searches relative to the including file first.
type IncludeDirective struct {
	Path   string `json:"path"`
	System bool   `json:"system,omitempty"`
}

// LineDirective is a decoded #line directive. HasFile is true when the
// optional source string number was present.
type LineDirective struct {
	Line    int  `json:"line"`
	File    int  `json:"file,omitempty"`
	HasFile bool `json:"has_file,omitempty"`
}

// MarkerDirective stands for the directives that carry no payload: #else
// and #endif.
type MarkerDirective struct {
	Kind DirectiveKind `json:"kind"`
}

func (VersionDirective) directiveKind() DirectiveKind   { return DirectiveVersion }
func (ExtensionDirective) directiveKind() DirectiveKind { return DirectiveExtension }
func (DefineDirective) directiveKind() DirectiveKind    { return DirectiveDefine }
func (UndefDirective) directiveKind() DirectiveKind     { return DirectiveUndef }
func (IfDefDirective) directiveKind() DirectiveKind     { return DirectiveIfDef }
func (IfNDefDirective) directiveKind() DirectiveKind    { return DirectiveIfNDef }
func (ErrorMessage) directiveKind() DirectiveKind       { return DirectiveError }
func (IncludeDirective) directiveKind() DirectiveKind   { return DirectiveInclude }
func (LineDirective) directiveKind() DirectiveKind      { return DirectiveLine }
func (m MarkerDirective) directiveKind() DirectiveKind  { return m.Kind }

// objectDefine builds an object-like definition with a literal replacement,
// used for built-in and caller pre-seeded macros.
func objectDefine(name, value string, protected bool) *DefineDirective {
	def := &DefineDirective{Name: name, Protected: protected}
	if value != "" {
		kind := cst.TokenNumber
		if isIdentStart(value[0]) {
			kind = cst.TokenIdent
		}
		def.Replacement = []cst.Token{{Kind: kind, Text: value}}
	}
	return def
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// ParseDefineSpec builds an object-like definition from a command line
// NAME=VALUE spec. An empty value defaults to 1, so -DFOO behaves like
// `#define FOO 1`.
func ParseDefineSpec(name, value string) (*DefineDirective, error) {
	tokens := cst.Tokenize(name)
	if len(tokens) != 1 || tokens[0].Kind != cst.TokenIdent {
		return nil, fmt.Errorf("invalid macro name %q", name)
	}
	if value == "" {
		value = "1"
	}
	return &DefineDirective{
		Name:        name,
		Replacement: trimTrivia(cst.Tokenize(value)),
	}, nil
}

// decodeVersion parses `#version number [profile]`.
func decodeVersion(file FileId, node *cst.Node) (*VersionDirective, *Diagnostic) {
	args := node.Arguments()
	if len(args) == 0 || args[0].Kind != cst.TokenNumber {
		return nil, nodeDiag(MalformedVersion, file, node)
	}
	number, err := strconv.Atoi(args[0].Text)
	if err != nil {
		return nil, nodeDiag(MalformedVersion, file, node)
	}

	version := Version{Number: number, Profile: NoProfile}
	switch {
	case len(args) == 1:
	case len(args) == 2 && args[1].Kind == cst.TokenIdent:
		profile, ok := profileNames[args[1].Text]
		if !ok {
			diag := nodeDiag(UnknownProfile, file, node)
			diag.Ident = args[1].Text
			return nil, diag
		}
		version.Profile = profile
	default:
		return nil, nodeDiag(MalformedVersion, file, node)
	}
	return &VersionDirective{Version: version}, nil
}

// decodeExtension parses `#extension name : behavior`. The name may be the
// literal "all".
func decodeExtension(file FileId, node *cst.Node) (*ExtensionDirective, *Diagnostic) {
	args := node.Arguments()
	if len(args) != 3 ||
		args[0].Kind != cst.TokenIdent ||
		args[1].Text != ":" ||
		args[2].Kind != cst.TokenIdent {
		return nil, nodeDiag(MalformedExtension, file, node)
	}
	behavior, ok := behaviorNames[args[2].Text]
	if !ok {
		return nil, nodeDiag(MalformedExtension, file, node)
	}
	return &ExtensionDirective{Extension: Extension{
		Name:     ExtensionName(args[0].Text),
		Behavior: behavior,
	}}, nil
}

// decodeDefine parses both the object-like and the function-like forms. A
// definition is function-like only when the '(' immediately follows the
// macro name, with no whitespace in between.
func decodeDefine(file FileId, node *cst.Node) (*DefineDirective, *Diagnostic) {
	children := node.Children

	// Locate the macro name: first non-trivia token after the directive
	// name ("define" itself is the first non-trivia token after '#').
	nameIdx := -1
	seen := 0
	for i, tok := range children {
		if tok.Trivia() || tok.Text == "#" {
			continue
		}
		seen++
		if seen == 2 {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 || children[nameIdx].Kind != cst.TokenIdent {
		return nil, nodeDiag(MalformedDefine, file, node)
	}

	def := &DefineDirective{Name: children[nameIdx].Text}
	body := children[nameIdx+1:]

	if len(body) > 0 && body[0].Kind == cst.TokenSymbol && body[0].Text == "(" {
		def.Function = true
		rest, params, diag := decodeDefineParams(file, node, body[1:])
		if diag != nil {
			return nil, diag
		}
		def.Params = params
		body = rest
	}

	def.Replacement = trimTrivia(body)
	return def, nil
}

// decodeDefineParams parses the parameter list after the opening '('. It
// returns the tokens following the closing ')'.
func decodeDefineParams(file FileId, node *cst.Node, body []cst.Token) ([]cst.Token, []string, *Diagnostic) {
	var params []string
	seenNames := make(collections.Set[string])
	wantIdent := true
	for i := 0; i < len(body); i++ {
		tok := body[i]
		if tok.Trivia() {
			continue
		}
		switch {
		case tok.Kind == cst.TokenSymbol && tok.Text == ")":
			if wantIdent && len(params) > 0 {
				// Dangling comma.
				return nil, nil, nodeDiag(MalformedDefine, file, node)
			}
			return body[i+1:], params, nil
		case wantIdent && tok.Kind == cst.TokenIdent:
			if seenNames.Contains(tok.Text) {
				diag := nodeDiag(DuplicateParameter, file, node)
				diag.Ident = tok.Text
				return nil, nil, diag
			}
			seenNames.Add(tok.Text)
			params = append(params, tok.Text)
			wantIdent = false
		case !wantIdent && tok.Kind == cst.TokenSymbol && tok.Text == ",":
			wantIdent = true
		default:
			return nil, nil, nodeDiag(MalformedDefine, file, node)
		}
	}
	// Newline before the closing ')'.
	return nil, nil, nodeDiag(MalformedDefine, file, node)
}

// trimTrivia removes leading and trailing trivia from a token list. Interior
// trivia is preserved so substituted text keeps its spacing.
func trimTrivia(tokens []cst.Token) []cst.Token {
	start := 0
	for start < len(tokens) && tokens[start].Trivia() {
		start++
	}
	end := len(tokens)
	for end > start && tokens[end-1].Trivia() {
		end--
	}
	return tokens[start:end]
}

// decodeIdentDirective parses the single-identifier directives #ifdef,
// #ifndef and #undef.
func decodeIdentDirective(file FileId, node *cst.Node) (string, *Diagnostic) {
	args := node.Arguments()
	switch {
	case len(args) == 0 || args[0].Kind != cst.TokenIdent:
		return "", nodeDiag(MalformedDirective, file, node)
	case len(args) > 1:
		return "", nodeDiag(TrailingTokens, file, node)
	default:
		return args[0].Text, nil
	}
}

func decodeIfDef(file FileId, node *cst.Node) (*IfDefDirective, *Diagnostic) {
	ident, diag := decodeIdentDirective(file, node)
	if diag != nil {
		return nil, diag
	}
	return &IfDefDirective{Ident: ident}, nil
}

func decodeIfNDef(file FileId, node *cst.Node) (*IfNDefDirective, *Diagnostic) {
	ident, diag := decodeIdentDirective(file, node)
	if diag != nil {
		return nil, diag
	}
	return &IfNDefDirective{Ident: ident}, nil
}

func decodeUndef(file FileId, node *cst.Node) (*UndefDirective, *Diagnostic) {
	ident, diag := decodeIdentDirective(file, node)
	if diag != nil {
		return nil, diag
	}
	return &UndefDirective{Ident: ident}, nil
}

// decodeError captures the remainder of the line as the diagnostic message.
// An empty message is legal.
func decodeError(node *cst.Node) *ErrorMessage {
	var text strings.Builder
	seen := 0
	for _, tok := range node.Children {
		if seen >= 2 {
			text.WriteString(tok.Text)
			continue
		}
		if !tok.Trivia() && tok.Text != "#" {
			seen = 2
		}
	}
	return &ErrorMessage{Message: strings.TrimSpace(text.String())}
}

// decodeInclude parses a `"..."` or `<...>` path literal.
func decodeInclude(file FileId, node *cst.Node) (*IncludeDirective, *Diagnostic) {
	children := node.Children

	// Skip '#' and the directive name; stop at the path literal.
	i := 0
	seen := 0
	for ; i < len(children); i++ {
		if children[i].Trivia() || children[i].Text == "#" {
			continue
		}
		seen++
		if seen == 2 {
			break
		}
	}
	if i >= len(children) {
		return nil, nodeDiag(MalformedDirective, file, node)
	}

	var dir *IncludeDirective
	switch tok := children[i]; {
	case tok.Kind == cst.TokenString:
		path := strings.Trim(tok.Text, `"`)
		if path == "" {
			return nil, nodeDiag(MalformedDirective, file, node)
		}
		dir = &IncludeDirective{Path: path}
		i++
	case tok.Kind == cst.TokenSymbol && tok.Text == "<":
		var path strings.Builder
		closed := false
		for i++; i < len(children); i++ {
			if children[i].Kind == cst.TokenSymbol && children[i].Text == ">" {
				closed = true
				i++
				break
			}
			if children[i].Kind == cst.TokenNewline {
				break
			}
			path.WriteString(children[i].Text)
		}
		if !closed || path.Len() == 0 {
			return nil, nodeDiag(MalformedDirective, file, node)
		}
		dir = &IncludeDirective{Path: path.String(), System: true}
	default:
		return nil, nodeDiag(MalformedDirective, file, node)
	}

	for ; i < len(children); i++ {
		if !children[i].Trivia() {
			return nil, nodeDiag(TrailingTokens, file, node)
		}
	}
	return dir, nil
}

// decodeLine parses `#line number [source-string-number]`.
func decodeLine(file FileId, node *cst.Node) (*LineDirective, *Diagnostic) {
	args := node.Arguments()
	if len(args) == 0 || len(args) > 2 {
		return nil, nodeDiag(MalformedDirective, file, node)
	}
	line, err := strconv.Atoi(args[0].Text)
	if err != nil || args[0].Kind != cst.TokenNumber {
		return nil, nodeDiag(MalformedDirective, file, node)
	}
	dir := &LineDirective{Line: line}
	if len(args) == 2 {
		src, err := strconv.Atoi(args[1].Text)
		if err != nil || args[1].Kind != cst.TokenNumber {
			return nil, nodeDiag(MalformedDirective, file, node)
		}
		dir.File = src
		dir.HasFile = true
	}
	return dir, nil
}
