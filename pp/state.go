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
	"maps"

	"github.com/yorkie/glsl-lang/pp/cst"
	"github.com/yorkie/glsl-lang/pp/exts"
)

// FileId identifies a source file within one processor run. Ids are non-zero
// and stable for the processor's lifetime; zero marks built-in definitions.
type FileId uint32

// Span is a byte range within one file.
type Span struct {
	File  FileId `json:"file"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

func (s Span) String() string { return fmt.Sprintf("%d:%d..%d", s.File, s.Start, s.End) }

func spanIn(file FileId, pos cst.Span) Span {
	return Span{File: file, Start: pos.Start, End: pos.End}
}

// IncludeMode selects how #include directives are processed.
type IncludeMode int

const (
	// No #include directives are allowed.
	IncludeNone IncludeMode = iota
	// GL_ARB_shading_language_include runtime includes.
	ArbInclude
	// GL_GOOGLE_include_directive compile-time includes.
	GoogleInclude
)

// Profile is the optional profile of a #version directive.
type Profile int

const (
	NoProfile Profile = iota
	CoreProfile
	CompatibilityProfile
	EsProfile
)

var profileNames = map[string]Profile{
	"core":          CoreProfile,
	"compatibility": CompatibilityProfile,
	"es":            EsProfile,
}

func (p Profile) String() string {
	switch p {
	case CoreProfile:
		return "core"
	case CompatibilityProfile:
		return "compatibility"
	case EsProfile:
		return "es"
	default:
		return ""
	}
}

// Version is the shader version declared with #version. The zero directive
// count of a shader implies version 110 with no profile.
type Version struct {
	Number  int     `json:"number"`
	Profile Profile `json:"profile,omitempty"`
}

// DefaultVersion is the version assumed before any #version directive.
var DefaultVersion = Version{Number: 110, Profile: NoProfile}

// Behavior is the requested behavior of an #extension directive.
type Behavior int

const (
	BehaviorRequire Behavior = iota
	BehaviorEnable
	BehaviorWarn
	BehaviorDisable
)

var behaviorNames = map[string]Behavior{
	"require": BehaviorRequire,
	"enable":  BehaviorEnable,
	"warn":    BehaviorWarn,
	"disable": BehaviorDisable,
}

func (b Behavior) String() string {
	switch b {
	case BehaviorRequire:
		return "require"
	case BehaviorEnable:
		return "enable"
	case BehaviorWarn:
		return "warn"
	default:
		return "disable"
	}
}

// Active reports whether the behavior turns the extension on.
func (b Behavior) Active() bool { return b != BehaviorDisable }

// ExtensionNameAll is the literal "all" target of an #extension directive.
const ExtensionNameAll = "all"

// ExtensionName is an #extension target: a concrete extension name or the
// literal "all".
type ExtensionName string

// IsAll reports whether the name is the "all" pseudo-target.
func (n ExtensionName) IsAll() bool { return string(n) == ExtensionNameAll }

// Known reports whether the name is in the extension registry.
func (n ExtensionName) Known() bool { return exts.Contains(string(n)) }

// Extension pairs an #extension target with its requested behavior.
type Extension struct {
	Name     ExtensionName `json:"name"`
	Behavior Behavior      `json:"behavior"`
}

// Definition is one entry of the macro definition table: a source-level
// #define or one of the synthesized built-ins. The interface is sealed.
type Definition interface {
	// Name returns the defined identifier.
	Name() string
	// Protected reports whether the definition cannot be redefined or
	// removed.
	Protected() bool

	definition()
}

// RegularDefinition is a macro introduced by a #define directive, or
// pre-seeded by the caller. Replacement token lists are shared between
// copies of a ProcessorState; they are never mutated after decoding.
type RegularDefinition struct {
	Define *DefineDirective
	// File that declared the macro; zero for built-ins and pre-seeds.
	File FileId
}

func (d *RegularDefinition) Name() string    { return d.Define.Name }
func (d *RegularDefinition) Protected() bool { return d.Define.Protected }
func (d *RegularDefinition) definition()     {}

// builtinKind distinguishes the three synthesized macros. They have no
// replacement list; the expansion engine computes their value at the
// invocation site.
type builtinKind int

const (
	builtinLine builtinKind = iota
	builtinFile
	builtinVersion
)

type builtinDefinition struct {
	kind builtinKind
	name string
}

func (d *builtinDefinition) Name() string    { return d.name }
func (d *builtinDefinition) Protected() bool { return true }
func (d *builtinDefinition) definition()     {}

// ProcessorState is the mutable state of one preprocessor: the extension
// stack, the include mode, the definition table and the declared version.
// It is owned by a single Processor and mutated only by directive handling.
type ProcessorState struct {
	extensions  []Extension
	includeMode IncludeMode
	definitions map[string]Definition
	version     Version
}

// DefaultState returns the initial preprocessor state: `#extension all :
// disable`, no include mode, the GL_core_profile and built-in macro
// definitions, and the default version.
func DefaultState() *ProcessorState {
	s := &ProcessorState{
		extensions:  []Extension{{Name: ExtensionNameAll, Behavior: BehaviorDisable}},
		includeMode: IncludeNone,
		definitions: make(map[string]Definition, 4),
		version:     DefaultVersion,
	}
	s.definitions["GL_core_profile"] = &RegularDefinition{
		Define: objectDefine("GL_core_profile", "1", true),
	}
	s.definitions["__LINE__"] = &builtinDefinition{kind: builtinLine, name: "__LINE__"}
	s.definitions["__FILE__"] = &builtinDefinition{kind: builtinFile, name: "__FILE__"}
	s.definitions["__VERSION__"] = &builtinDefinition{kind: builtinVersion, name: "__VERSION__"}
	return s
}

// Clone returns an independent copy of the state. Definition values are
// shared; they are immutable once created.
func (s *ProcessorState) Clone() *ProcessorState {
	return &ProcessorState{
		extensions:  append([]Extension(nil), s.extensions...),
		includeMode: s.includeMode,
		definitions: maps.Clone(s.definitions),
		version:     s.version,
	}
}

// Define adds a caller-supplied definition before processing starts, e.g.
// for -D command line macros. Protected names are rejected the same way a
// #define directive would be.
func (s *ProcessorState) Define(def *DefineDirective) error {
	d := &RegularDefinition{Define: def}
	if diag := s.define(d, Span{}); diag != nil {
		return diag
	}
	return nil
}

// IncludeMode returns the current include mode.
func (s *ProcessorState) IncludeMode() IncludeMode { return s.includeMode }

// EnableIncludeMode switches the include mode before processing starts, as
// if the corresponding extension had been enabled on the first line.
func (s *ProcessorState) EnableIncludeMode(mode IncludeMode) { s.includeMode = mode }

// Version returns the currently declared version.
func (s *ProcessorState) Version() Version { return s.version }

// Extensions returns the extension stack in occurrence order.
func (s *ProcessorState) Extensions() []Extension {
	return append([]Extension(nil), s.extensions...)
}

// Lookup returns the definition of name, or nil.
func (s *ProcessorState) Lookup(name string) Definition {
	return s.definitions[name]
}

func (s *ProcessorState) defined(name string) bool {
	_, ok := s.definitions[name]
	return ok
}
