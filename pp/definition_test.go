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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regular(name string) *RegularDefinition {
	return &RegularDefinition{Define: &DefineDirective{Name: name}}
}

func TestDefaultStateDefinitions(t *testing.T) {
	s := DefaultState()
	for _, name := range []string{"GL_core_profile", "__LINE__", "__FILE__", "__VERSION__"} {
		def := s.Lookup(name)
		require.NotNil(t, def, name)
		assert.True(t, def.Protected(), name)
	}
	assert.Equal(t, DefaultVersion, s.Version())
	assert.Equal(t, IncludeNone, s.IncludeMode())
	assert.Equal(t, []Extension{{Name: ExtensionNameAll, Behavior: BehaviorDisable}}, s.Extensions())
}

func TestDefineAndRedefine(t *testing.T) {
	s := DefaultState()

	assert.Nil(t, s.define(regular("FOO"), Span{}))
	require.NotNil(t, s.Lookup("FOO"))

	// Unprotected redefinition replaces the previous definition.
	other := regular("FOO")
	assert.Nil(t, s.define(other, Span{}))
	assert.Same(t, Definition(other), s.Lookup("FOO"))
}

func TestDefineProtected(t *testing.T) {
	s := DefaultState()

	testCases := []string{
		// GL_ prefix is reserved whether or not it is defined.
		"GL_whatever",
		"GL_core_profile",
		// The built-ins are protected.
		"__LINE__",
	}
	for _, name := range testCases {
		before := s.Lookup(name)
		diag := s.define(regular(name), Span{})
		require.NotNil(t, diag, name)
		assert.Equal(t, ProtectedDefine, diag.Kind)
		assert.Equal(t, name, diag.Ident)
		assert.False(t, diag.IsUndef)
		assert.Equal(t, before, s.Lookup(name), "table must be unchanged")
	}
}

func TestUndef(t *testing.T) {
	s := DefaultState()
	require.Nil(t, s.define(regular("FOO"), Span{}))

	assert.Nil(t, s.undef("FOO", Span{}))
	assert.Nil(t, s.Lookup("FOO"))

	// Removing an absent entry is not an error.
	assert.Nil(t, s.undef("FOO", Span{}))
}

func TestUndefProtected(t *testing.T) {
	s := DefaultState()
	for _, name := range []string{"GL_core_profile", "GL_not_defined", "__FILE__"} {
		diag := s.undef(name, Span{})
		require.NotNil(t, diag, name)
		assert.Equal(t, ProtectedDefine, diag.Kind)
		assert.True(t, diag.IsUndef)
	}
	assert.NotNil(t, s.Lookup("GL_core_profile"))
}

func TestStateClone(t *testing.T) {
	s := DefaultState()
	require.Nil(t, s.define(regular("FOO"), Span{}))

	clone := s.Clone()
	require.Nil(t, clone.define(regular("BAR"), Span{}))
	require.Nil(t, clone.undef("FOO", Span{}))

	assert.NotNil(t, s.Lookup("FOO"))
	assert.Nil(t, s.Lookup("BAR"))
	assert.NotNil(t, clone.Lookup("BAR"))
}

func TestParseDefineSpec(t *testing.T) {
	def, err := ParseDefineSpec("FOO", "")
	require.NoError(t, err)
	assert.Equal(t, "FOO", def.Name)
	require.Len(t, def.Replacement, 1)
	assert.Equal(t, "1", def.Replacement[0].Text)

	def, err = ParseDefineSpec("BAR", "x + 1")
	require.NoError(t, err)
	assert.Len(t, def.Replacement, 5)

	_, err = ParseDefineSpec("not a name", "1")
	assert.Error(t, err)
	_, err = ParseDefineSpec("7up", "1")
	assert.Error(t, err)
}
