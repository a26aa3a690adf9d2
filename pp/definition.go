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

import "strings"

// protectedName reports whether the identifier is reserved regardless of
// whether it currently has a definition. Everything starting with GL_
// belongs to the implementation.
func protectedName(name string) bool {
	return strings.HasPrefix(name, "GL_")
}

// define installs a regular definition. A protected target leaves the table
// unchanged and returns a ProtectedDefine diagnostic. An unprotected
// existing definition is replaced.
func (s *ProcessorState) define(def *RegularDefinition, span Span) *Diagnostic {
	name := def.Name()
	if protectedName(name) {
		return &Diagnostic{Kind: ProtectedDefine, Span: span, Ident: name}
	}
	if existing, ok := s.definitions[name]; ok && existing.Protected() {
		return &Diagnostic{Kind: ProtectedDefine, Span: span, Ident: name}
	}
	s.definitions[name] = def
	return nil
}

// undef removes a definition. Removing an absent entry is not an error;
// removing a protected one (or any GL_ name) leaves the table unchanged and
// returns a ProtectedDefine diagnostic.
func (s *ProcessorState) undef(name string, span Span) *Diagnostic {
	if protectedName(name) {
		return &Diagnostic{Kind: ProtectedDefine, Span: span, Ident: name, IsUndef: true}
	}
	if existing, ok := s.definitions[name]; ok {
		if existing.Protected() {
			return &Diagnostic{Kind: ProtectedDefine, Span: span, Ident: name, IsUndef: true}
		}
		delete(s.definitions, name)
	}
	return nil
}
