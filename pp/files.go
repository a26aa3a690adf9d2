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
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yorkie/glsl-lang/internal/collections"
	"github.com/yorkie/glsl-lang/pp/cst"
)

// FileSystem is the filesystem collaborator. Read failures surface as
// IoError events; the preprocessor never aborts on them.
type FileSystem interface {
	// Canonicalize resolves path to its canonical absolute form.
	Canonicalize(path string) (string, error)
	// Read returns the decoded text of a canonical path.
	Read(path string) (string, error)
	// Exists reports whether a path names a readable file. Used during
	// include resolution to pick the first matching search entry.
	Exists(path string) bool
}

// OsFileSystem reads from the operating system.
type OsFileSystem struct{}

// NewOsFileSystem returns the operating system collaborator.
func NewOsFileSystem() *OsFileSystem { return &OsFileSystem{} }

func (*OsFileSystem) Canonicalize(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("canonicalize %s: %w", p, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

func (*OsFileSystem) Read(p string) (string, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (*OsFileSystem) Exists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// MemFileSystem serves sources from memory, for string processing and for
// tests.
type MemFileSystem struct {
	files map[string]string
}

// NewMemFileSystem returns an in-memory collaborator over the given
// path-to-source mapping.
func NewMemFileSystem(files map[string]string) *MemFileSystem {
	if files == nil {
		files = make(map[string]string)
	}
	return &MemFileSystem{files: files}
}

// Add registers or replaces a virtual source.
func (fs *MemFileSystem) Add(name, source string) {
	fs.files[path.Clean(name)] = source
}

func (fs *MemFileSystem) Canonicalize(p string) (string, error) {
	clean := path.Clean(p)
	if _, ok := fs.files[clean]; !ok {
		return "", fmt.Errorf("canonicalize %s: %w", p, os.ErrNotExist)
	}
	return clean, nil
}

func (fs *MemFileSystem) Read(p string) (string, error) {
	source, ok := fs.files[path.Clean(p)]
	if !ok {
		return "", fmt.Errorf("read %s: %w", p, os.ErrNotExist)
	}
	return source, nil
}

func (fs *MemFileSystem) Exists(p string) bool {
	_, ok := fs.files[path.Clean(p)]
	return ok
}

// overlayFileSystem layers virtual sources over a base collaborator. It
// backs ProcessString: the virtual entry file wins, includes fall through.
type overlayFileSystem struct {
	virtual *MemFileSystem
	base    FileSystem
}

func (fs *overlayFileSystem) Canonicalize(p string) (string, error) {
	if fs.virtual.Exists(p) {
		return fs.virtual.Canonicalize(p)
	}
	return fs.base.Canonicalize(p)
}

func (fs *overlayFileSystem) Read(p string) (string, error) {
	if fs.virtual.Exists(p) {
		return fs.virtual.Read(p)
	}
	return fs.base.Read(p)
}

func (fs *overlayFileSystem) Exists(p string) bool {
	return fs.virtual.Exists(p) || fs.base.Exists(p)
}

// ExpandSearchPaths resolves include search entries against the operating
// system. Entries may be plain directories or doublestar glob patterns;
// every directory matching a pattern becomes a search entry, in sorted
// order.
func ExpandSearchPaths(entries []string) ([]string, error) {
	var out []string
	for _, entry := range entries {
		if !hasGlobMeta(entry) {
			out = append(out, entry)
			continue
		}
		matches, err := doublestar.FilepathGlob(entry)
		if err != nil {
			return nil, fmt.Errorf("search path %s: %w", entry, err)
		}
		dirs := collections.FilterSlice(matches, func(match string) bool {
			info, err := os.Stat(match)
			return err == nil && info.IsDir()
		})
		sort.Strings(dirs)
		out = append(out, dirs...)
	}
	return out, nil
}

func hasGlobMeta(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// fileManager canonicalizes paths, assigns stable file ids and caches
// parsed trees for the lifetime of one processor.
type fileManager struct {
	fs FileSystem
	// Memoized canonicalization of raw input paths.
	canonical map[string]string
	// Canonical path to id; ids are assigned on first sight, never reused.
	ids map[string]FileId
	// Id back to the canonical path, for EnterFile events and relative
	// include resolution.
	paths map[FileId]string
	cache map[FileId]*cst.Ast
}

func newFileManager(fs FileSystem) *fileManager {
	return &fileManager{
		fs:        fs,
		canonical: make(map[string]string),
		ids:       make(map[string]FileId),
		paths:     make(map[FileId]string),
		cache:     make(map[FileId]*cst.Ast),
	}
}

// canonicalize memoizes the collaborator's canonicalization per input path.
func (m *fileManager) canonicalize(p string) (string, error) {
	if canonical, ok := m.canonical[p]; ok {
		return canonical, nil
	}
	canonical, err := m.fs.Canonicalize(p)
	if err != nil {
		return "", err
	}
	m.canonical[p] = canonical
	return canonical, nil
}

// assignId returns the id of a canonical path, allocating the next non-zero
// id on first sight.
func (m *fileManager) assignId(canonical string) FileId {
	if id, ok := m.ids[canonical]; ok {
		return id
	}
	id := FileId(len(m.ids) + 1)
	m.ids[canonical] = id
	m.paths[id] = canonical
	return id
}

// parse canonicalizes, assigns an id, reads and parses the file, caching
// the tree. Subsequent calls with any path of the same file return the
// cached tree without re-reading.
func (m *fileManager) parse(p string) (FileId, *cst.Ast, error) {
	canonical, err := m.canonicalize(p)
	if err != nil {
		return 0, nil, err
	}
	id := m.assignId(canonical)
	if ast, ok := m.cache[id]; ok {
		return id, ast, nil
	}
	text, err := m.fs.Read(canonical)
	if err != nil {
		return id, nil, err
	}
	ast := cst.Parse(text)
	m.cache[id] = &ast
	return id, &ast, nil
}

// pathOf returns the canonical path of an assigned id.
func (m *fileManager) pathOf(id FileId) string { return m.paths[id] }
