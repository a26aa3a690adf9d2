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
	"encoding/json"

	"github.com/yorkie/glsl-lang/pp/cst"
)

// Event is one element of the preprocessor's output stream. Events are
// totally ordered by production time, consistent with source order across
// files, with includes inlined depth-first. The interface is sealed.
type Event interface {
	event()
}

// EnterFile reports that the driver started reading a file: the root at the
// beginning of the stream, or an included file immediately after its
// Include directive event.
type EnterFile struct {
	File FileId `json:"file"`
	Path string `json:"path"`
}

// TokenEvent is one expanded terminal token. Concatenating the Text of all
// token events of a directive-free, macro-free source reconstructs it
// exactly.
type TokenEvent struct {
	Kind cst.TokenKind `json:"kind"`
	Span Span          `json:"span"`
	Text string        `json:"text"`
}

// DirectiveEvent summarizes one successfully decoded directive.
type DirectiveEvent struct {
	Kind      DirectiveKind `json:"kind"`
	Span      Span          `json:"span"`
	Directive Directive     `json:"directive,omitempty"`
}

// ErrorEvent carries one preprocessing diagnostic.
type ErrorEvent struct {
	Diag *Diagnostic `json:"diag"`
}

// IoErrorEvent reports a filesystem collaborator failure. The referring
// span points at the #include directive, or is zero for the root file.
type IoErrorEvent struct {
	Err  error `json:"-"`
	Span Span  `json:"span"`
}

func (EnterFile) event()      {}
func (TokenEvent) event()     {}
func (DirectiveEvent) event() {}
func (ErrorEvent) event()     {}
func (IoErrorEvent) event()   {}

// The wire form of every event carries a type tag so tooling can switch on
// it without inspecting the payload shape.
type taggedEvent struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func (e EnterFile) MarshalJSON() ([]byte, error) {
	type plain EnterFile
	return json.Marshal(taggedEvent{Type: "enter_file", Data: plain(e)})
}

func (e TokenEvent) MarshalJSON() ([]byte, error) {
	type wire struct {
		Kind string `json:"kind"`
		Span Span   `json:"span"`
		Text string `json:"text"`
	}
	return json.Marshal(taggedEvent{Type: "token", Data: wire{
		Kind: e.Kind.String(),
		Span: e.Span,
		Text: e.Text,
	}})
}

func (e DirectiveEvent) MarshalJSON() ([]byte, error) {
	type wire struct {
		Kind      string    `json:"kind"`
		Span      Span      `json:"span"`
		Directive Directive `json:"directive,omitempty"`
	}
	return json.Marshal(taggedEvent{Type: "directive", Data: wire{
		Kind:      e.Kind.String(),
		Span:      e.Span,
		Directive: e.Directive,
	}})
}

func (e ErrorEvent) MarshalJSON() ([]byte, error) {
	type wire struct {
		Kind string `json:"kind"`
		*Diagnostic
	}
	return json.Marshal(taggedEvent{Type: "error", Data: wire{
		Kind:       e.Diag.Kind.String(),
		Diagnostic: e.Diag,
	}})
}

func (e IoErrorEvent) MarshalJSON() ([]byte, error) {
	type wire struct {
		Error string `json:"error"`
		Span  Span   `json:"span"`
	}
	return json.Marshal(taggedEvent{Type: "io_error", Data: wire{
		Error: e.Err.Error(),
		Span:  e.Span,
	}})
}
