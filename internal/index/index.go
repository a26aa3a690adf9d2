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

// Package index defines serializable data structures for representing the
// mapping of shader include paths to the files providing them. Tooling uses
// an index to snapshot how #include directives resolve for a given search
// path configuration, and to spot include paths served by more than one
// file.
package index

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yorkie/glsl-lang/internal/collections"
)

type (
	// Unambiguous mapping of an include path to the file providing it.
	UniqueIncludeIndex map[string]string

	// List of at least 2 files providing the same include path.
	AmbiguousProviders []string

	// Ambiguous mapping of an include path to the multiple files providing
	// it under different search roots.
	AmbiguousIncludeIndex map[string]AmbiguousProviders

	// Full index of both unambiguous and ambiguous include paths.
	FullIncludeIndex struct {
		// Include paths provided by exactly one file.
		Unique UniqueIncludeIndex `json:"unique"`
		// Include paths provided by multiple files; resolution depends on
		// search path order.
		Ambiguous AmbiguousIncludeIndex `json:"ambiguous"`
	}
)

// Shader file suffixes recognized when scanning search roots.
var shaderExtensions = collections.SetOf(
	".glsl", ".vert", ".frag", ".geom", ".comp", ".tesc", ".tese",
	".mesh", ".rgen",
)

// Build scans the given search roots and indexes every shader file below
// them. The include path of a file is its slash-separated path relative to
// the root that provides it; a path provided by several roots lands in the
// ambiguous section, with providers listed in root order.
func Build(roots []string) (FullIncludeIndex, error) {
	providers := make(map[string][]string)
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil || entry.IsDir() {
				return err
			}
			if !shaderExtensions.Contains(strings.ToLower(filepath.Ext(path))) {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			include := filepath.ToSlash(rel)
			providers[include] = append(providers[include], path)
			return nil
		})
		if err != nil {
			return FullIncludeIndex{}, fmt.Errorf("indexing %s: %w", root, err)
		}
	}

	index := FullIncludeIndex{
		Unique:    make(UniqueIncludeIndex),
		Ambiguous: make(AmbiguousIncludeIndex),
	}
	for include, files := range providers {
		if len(files) == 1 {
			index.Unique[include] = files[0]
		} else {
			index.Ambiguous[include] = files
		}
	}
	return index, nil
}

func (providers AmbiguousProviders) Validate() error {
	if len(providers) < 2 {
		return fmt.Errorf("ambiguous providers must contain at least 2 elements, got %d", len(providers))
	}
	if duplicates := collections.FindDuplicates(providers); len(duplicates) > 0 {
		return fmt.Errorf("duplicate providers in list %v: %v", providers, duplicates)
	}
	return nil
}

func (index AmbiguousIncludeIndex) Validate() error {
	for _, providers := range index {
		if err := providers.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (index FullIncludeIndex) Validate() error {
	unique := slices.Collect(maps.Keys(index.Unique))
	ambiguous := slices.Collect(maps.Keys(index.Ambiguous))
	both := append(unique, ambiguous...)
	if duplicates := collections.FindDuplicates(both); len(duplicates) > 0 {
		slices.SortFunc(duplicates, cmp.Compare)
		return fmt.Errorf("include path present in multiple sections: %v", duplicates)
	}
	return index.Ambiguous.Validate()
}

func ParseFullIncludeIndex(data []byte) (FullIncludeIndex, error) {
	var index FullIncludeIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return index, err
	}
	if err := index.Validate(); err != nil {
		return index, err
	}
	return index, nil
}

func (index FullIncludeIndex) Encode() []byte {
	result, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		log.Panicf("failed to encode FullIncludeIndex: %v", err)
	}
	return result
}
