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

package exts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	assert.True(t, Contains(ARBShadingLanguageInclude))
	assert.True(t, Contains(GoogleIncludeDirective))
	assert.True(t, Contains("GL_OES_texture_3D"))
	assert.False(t, Contains("GL_FAKE_extension"))
	assert.False(t, Contains("all"))
	assert.False(t, Contains(""))
}

func TestAll(t *testing.T) {
	count := 0
	for name := range All() {
		assert.True(t, Contains(name), name)
		count++
	}
	assert.Equal(t, Count(), count)
	assert.Equal(t, 146, count)
}
