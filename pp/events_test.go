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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshal(t *testing.T, event Event) map[string]any {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	return decoded
}

func TestEventJSONTags(t *testing.T) {
	enter := marshal(t, EnterFile{File: 1, Path: "a.glsl"})
	assert.Equal(t, "enter_file", enter["type"])

	token := marshal(t, TokenEvent{Text: "x"})
	assert.Equal(t, "token", token["type"])
	data := token["data"].(map[string]any)
	assert.Equal(t, "ident", data["kind"])
	assert.Equal(t, "x", data["text"])

	directive := marshal(t, DirectiveEvent{
		Kind:      DirectiveDefine,
		Directive: &DefineDirective{Name: "FOO"},
	})
	assert.Equal(t, "directive", directive["type"])
	data = directive["data"].(map[string]any)
	assert.Equal(t, "define", data["kind"])

	errEvent := marshal(t, ErrorEvent{Diag: &Diagnostic{
		Kind:  ProtectedDefine,
		Ident: "GL_X",
	}})
	assert.Equal(t, "error", errEvent["type"])
	data = errEvent["data"].(map[string]any)
	assert.Equal(t, "protected definition", data["kind"])
	assert.Equal(t, "GL_X", data["ident"])
}

func TestEventStreamIsSerializable(t *testing.T) {
	p := NewProcessor(DefaultState(), NewMemFileSystem(nil))
	events := p.ProcessString("#version 450\n#define X 1\nX\n#error boom\n", "s.glsl").Collect()
	for _, event := range events {
		_, err := json.Marshal(event)
		assert.NoError(t, err)
	}
}
