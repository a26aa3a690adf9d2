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

	"github.com/yorkie/glsl-lang/pp/cst"
)

// ErrorKind enumerates every diagnostic the preprocessor reports. No
// diagnostic aborts a run; each becomes an event paired with a span.
type ErrorKind int

const (
	// A malformed token or tree node surfaced from the syntax tree builder.
	ParseError ErrorKind = iota

	// Attempt to define or undefine a protected identifier.
	ProtectedDefine

	// #else with no matching open conditional, or after a previous #else.
	ExtraElse
	// #endif with no matching open conditional.
	ExtraEndIf
	// A conditional still open at the end of its file.
	UnterminatedConditional

	// An #error directive; the payload carries its message.
	ErrorDirective

	// A recognized but unimplemented construct.
	Unhandled

	// #include outside of an include mode.
	IncludeNotEnabled
	// #include forming a cycle through the active include stack.
	IncludeCycle
	// #include whose path resolves to no readable file.
	IncludeNotFound

	// Malformed directive bodies.
	MalformedVersion
	UnknownProfile
	MalformedExtension
	MalformedDefine
	MalformedDirective
	TrailingTokens
	DuplicateParameter

	// Macro invocation failures.
	UnterminatedMacroCall
	ArgArityMismatch
)

var errorKindNames = map[ErrorKind]string{
	ParseError:              "parse error",
	ProtectedDefine:         "protected definition",
	ExtraElse:               "extra #else",
	ExtraEndIf:              "extra #endif",
	UnterminatedConditional: "unterminated conditional",
	ErrorDirective:          "#error",
	Unhandled:               "unhandled construct",
	IncludeNotEnabled:       "include not enabled",
	IncludeCycle:            "include cycle",
	IncludeNotFound:         "include not found",
	MalformedVersion:        "malformed #version",
	UnknownProfile:          "unknown profile",
	MalformedExtension:      "malformed #extension",
	MalformedDefine:         "malformed #define",
	MalformedDirective:      "malformed directive",
	TrailingTokens:          "trailing tokens",
	DuplicateParameter:      "duplicate parameter",
	UnterminatedMacroCall:   "unterminated macro call",
	ArgArityMismatch:        "wrong number of macro arguments",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("error(%d)", int(k))
}

// Diagnostic is one preprocessing error, attached to the source range that
// produced it. Which payload fields are set depends on Kind.
type Diagnostic struct {
	Kind ErrorKind `json:"kind"`
	Span Span      `json:"span"`

	// Identifier involved: ProtectedDefine, DuplicateParameter,
	// UnterminatedMacroCall, ArgArityMismatch, IncludeCycle (the path).
	Ident string `json:"ident,omitempty"`
	// Set for ProtectedDefine: true when raised by #undef.
	IsUndef bool `json:"is_undef,omitempty"`
	// Free-form detail: ErrorDirective message, parse error text.
	Message string `json:"message,omitempty"`
	// Set for Unhandled: the node kind that was not understood.
	NodeKind string `json:"node_kind,omitempty"`
}

func (d *Diagnostic) Error() string {
	switch d.Kind {
	case ProtectedDefine:
		verb := "defined"
		if d.IsUndef {
			verb = "undefined"
		}
		return fmt.Sprintf("%s: protected identifier %s cannot be %s", d.Span, d.Ident, verb)
	case ErrorDirective:
		return fmt.Sprintf("%s: #error %s", d.Span, d.Message)
	case Unhandled:
		return fmt.Sprintf("%s: unhandled %s directive", d.Span, d.NodeKind)
	default:
		if d.Message != "" {
			return fmt.Sprintf("%s: %s: %s", d.Span, d.Kind, d.Message)
		}
		if d.Ident != "" {
			return fmt.Sprintf("%s: %s: %s", d.Span, d.Kind, d.Ident)
		}
		return fmt.Sprintf("%s: %s", d.Span, d.Kind)
	}
}

func diagnose(kind ErrorKind, span Span) *Diagnostic {
	return &Diagnostic{Kind: kind, Span: span}
}

func nodeDiag(kind ErrorKind, file FileId, node *cst.Node) *Diagnostic {
	return diagnose(kind, spanIn(file, node.Pos))
}
