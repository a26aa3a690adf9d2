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

// Package pp implements the shading language preprocessor. Given a root
// shader source, a Processor produces an ordered stream of events: expanded
// tokens, directive summaries, diagnostics and file boundary markers.
// Downstream compilers and language tooling consume the stream in place of
// raw shader text.
//
// The stream is pull-based. Process and ProcessString return an Events
// iterator; each Next call advances the state machine until one event is
// ready. A processor owns its state exclusively and supports one active
// iterator at a time.
package pp

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/yorkie/glsl-lang/pp/cst"
	"github.com/yorkie/glsl-lang/pp/exts"
)

// Processor drives preprocessing. It owns the definition table, the
// extension state and the file cache; parsed files are cached for its
// lifetime and file ids stay stable across runs.
type Processor struct {
	state   *ProcessorState
	files   *fileManager
	virtual *MemFileSystem
	// Directories searched for #include targets: the angle-bracket form
	// searches only these; the quoted form first tries the including
	// file's directory.
	searchPaths []string
}

// NewProcessor returns a processor with the given initial state and
// filesystem collaborator. A nil state means DefaultState; a nil fs means
// the operating system.
func NewProcessor(state *ProcessorState, fs FileSystem) *Processor {
	if state == nil {
		state = DefaultState()
	}
	if fs == nil {
		fs = NewOsFileSystem()
	}
	virtual := NewMemFileSystem(nil)
	return &Processor{
		state:   state,
		files:   newFileManager(&overlayFileSystem{virtual: virtual, base: fs}),
		virtual: virtual,
	}
}

// SetSearchPaths configures the include search path list.
func (p *Processor) SetSearchPaths(paths ...string) {
	p.searchPaths = append([]string(nil), paths...)
}

// State exposes the processor's current state.
func (p *Processor) State() *ProcessorState { return p.state }

// Reset replaces the processor state, typically with a clone of the state
// the processor was constructed with. The file cache and the assigned file
// ids survive, so re-processing a root yields identical events. Resetting
// while an iterator is active is not supported.
func (p *Processor) Reset(state *ProcessorState) {
	p.state = state
}

// Process returns the event stream for the file at entry.
func (p *Processor) Process(entry string) *Events {
	ev := &Events{p: p}
	ev.pushFile(entry, Span{})
	return ev
}

// ProcessString returns the event stream for an in-memory source. The
// source is registered under virtualPath; #include directives in it resolve
// against the processor's filesystem as usual. A virtual path is parsed
// once per processor; later calls with the same path reuse the cached tree.
func (p *Processor) ProcessString(source, virtualPath string) *Events {
	if !p.virtual.Exists(virtualPath) {
		p.virtual.Add(virtualPath, source)
	}
	return p.Process(virtualPath)
}

// fileFrame is the driver's per-file iteration state.
type fileFrame struct {
	id       FileId
	elements []cst.Element
	idx      int
	// Parse errors not yet interleaved into the stream.
	parseErrors []cst.ParseError
	lines       *cst.LineMap
	mask        maskStack
	// Adjustment applied to physical lines, set by #line.
	lineAdjust int
	// Value of __FILE__, normally int(id), overridden by #line.
	fileNumber int
}

// Events is the pull iterator over the preprocessing event stream. It owns
// a stack of open files; includes push a frame, exhaustion pops it.
type Events struct {
	p     *Processor
	stack []*fileFrame
	queue []Event
}

// Next returns the next event, or false when the stream is exhausted.
func (ev *Events) Next() (Event, bool) {
	for {
		if len(ev.queue) > 0 {
			event := ev.queue[0]
			ev.queue = ev.queue[1:]
			return event, true
		}
		if len(ev.stack) == 0 {
			return nil, false
		}

		top := ev.stack[len(ev.stack)-1]
		if top.idx >= len(top.elements) {
			ev.finishFile(top)
			ev.stack = ev.stack[:len(ev.stack)-1]
			continue
		}

		element := top.elements[top.idx]
		ev.flushParseErrors(top, element)
		top.idx++
		ev.handle(top, element)
	}
}

// Collect drains the stream into a slice.
func (ev *Events) Collect() []Event {
	var events []Event
	for {
		event, ok := ev.Next()
		if !ok {
			return events
		}
		events = append(events, event)
	}
}

func (ev *Events) emit(event Event) {
	ev.queue = append(ev.queue, event)
}

func (ev *Events) emitDiag(diag *Diagnostic) {
	ev.emit(ErrorEvent{Diag: diag})
}

// pushFile parses a file and opens a frame for it. Read failures become a
// single IoError event referring to the including directive.
func (ev *Events) pushFile(name string, ref Span) {
	id, ast, err := ev.p.files.parse(name)
	if err != nil {
		ev.emit(IoErrorEvent{Err: err, Span: ref})
		return
	}
	ev.emit(EnterFile{File: id, Path: ev.p.files.pathOf(id)})
	ev.stack = append(ev.stack, &fileFrame{
		id:          id,
		elements:    ast.Root,
		parseErrors: ast.Errors,
		lines:       ast.Lines,
		fileNumber:  int(id),
	})
}

// finishFile drains diagnostics owed at the end of a file: parse errors
// not yet interleaved, and one UnterminatedConditional per still-open
// frame.
func (ev *Events) finishFile(top *fileFrame) {
	for _, parseErr := range top.parseErrors {
		if top.mask.active() {
			diag := diagnose(ParseError, spanIn(top.id, parseErr.Pos))
			diag.Message = parseErr.Msg
			ev.emitDiag(diag)
		}
	}
	top.parseErrors = nil

	end := Span{File: top.id}
	if n := len(top.elements); n > 0 {
		last := top.elements[n-1].Span()
		end.Start, end.End = last.End, last.End
	}
	for i := 0; i < top.mask.depth(); i++ {
		ev.emitDiag(diagnose(UnterminatedConditional, end))
	}
	top.mask.frames = nil
}

// flushParseErrors interleaves builder diagnostics whose range ends at or
// before the upcoming element. Errors inside excluded blocks are dropped.
func (ev *Events) flushParseErrors(top *fileFrame, element cst.Element) {
	for len(top.parseErrors) > 0 {
		first := top.parseErrors[0]
		if element.Span().End < first.Pos.End {
			return
		}
		top.parseErrors = top.parseErrors[1:]
		if top.mask.active() {
			diag := diagnose(ParseError, spanIn(top.id, first.Pos))
			diag.Message = first.Msg
			ev.emitDiag(diag)
		}
	}
}

func (ev *Events) handle(top *fileFrame, element cst.Element) {
	switch el := element.(type) {
	case *cst.Node:
		ev.handleNode(top, el)
	case cst.Token:
		if !top.mask.active() {
			return
		}
		if el.Kind == cst.TokenIdent {
			ev.expandIdent(top, el)
			return
		}
		ev.emit(TokenEvent{Kind: el.Kind, Span: spanIn(top.id, el.Pos), Text: el.Text})
	}
}

func (ev *Events) handleNode(top *fileFrame, node *cst.Node) {
	state := ev.p.state
	active := top.mask.active()
	span := spanIn(top.id, node.Pos)

	switch node.Kind {
	case cst.NodeEmpty:
		// A lone '#'; discard.

	case cst.NodeVersion:
		if !active {
			return
		}
		dir, diag := decodeVersion(top.id, node)
		if diag != nil {
			ev.emitDiag(diag)
			return
		}
		state.version = dir.Version
		ev.emit(DirectiveEvent{Kind: DirectiveVersion, Span: span, Directive: dir})

	case cst.NodeExtension:
		if !active {
			return
		}
		dir, diag := decodeExtension(top.id, node)
		if diag != nil {
			ev.emitDiag(diag)
			return
		}
		state.extensions = append(state.extensions, dir.Extension)
		applyIncludeMode(state, dir.Extension)
		ev.emit(DirectiveEvent{Kind: DirectiveExtension, Span: span, Directive: dir})

	case cst.NodeDefine:
		if !active {
			return
		}
		dir, diag := decodeDefine(top.id, node)
		if diag != nil {
			ev.emitDiag(diag)
			return
		}
		defDiag := state.define(&RegularDefinition{Define: dir, File: top.id}, span)
		ev.emit(DirectiveEvent{Kind: DirectiveDefine, Span: span, Directive: dir})
		if defDiag != nil {
			ev.emitDiag(defDiag)
		}

	case cst.NodeUndef:
		if !active {
			return
		}
		dir, diag := decodeUndef(top.id, node)
		if diag != nil {
			ev.emitDiag(diag)
			return
		}
		undefDiag := state.undef(dir.Ident, span)
		ev.emit(DirectiveEvent{Kind: DirectiveUndef, Span: span, Directive: dir})
		if undefDiag != nil {
			ev.emitDiag(undefDiag)
		}

	case cst.NodeIfDef:
		if !active {
			top.mask.pushExcluded()
			return
		}
		dir, diag := decodeIfDef(top.id, node)
		if diag != nil {
			ev.emitDiag(diag)
			return
		}
		top.mask.push(state.defined(dir.Ident))
		ev.emit(DirectiveEvent{Kind: DirectiveIfDef, Span: span, Directive: dir})

	case cst.NodeIfNDef:
		if !active {
			top.mask.pushExcluded()
			return
		}
		dir, diag := decodeIfNDef(top.id, node)
		if diag != nil {
			ev.emitDiag(diag)
			return
		}
		top.mask.push(!state.defined(dir.Ident))
		ev.emit(DirectiveEvent{Kind: DirectiveIfNDef, Span: span, Directive: dir})

	case cst.NodeIf:
		// Expression evaluation is not implemented; the #if group is
		// excluded, but the level is tracked so nesting stays balanced. An
		// #else on this level includes its group when the outer state emits.
		top.mask.pushExcluded()

	case cst.NodeElse:
		outerActive := len(top.mask.frames) == 0 || top.mask.outerActive()
		if !top.mask.flipElse() {
			ev.emitDiag(diagnose(ExtraElse, span))
			return
		}
		if outerActive {
			ev.emit(DirectiveEvent{
				Kind:      DirectiveElse,
				Span:      span,
				Directive: MarkerDirective{Kind: DirectiveElse},
			})
		}

	case cst.NodeEndIf:
		if !top.mask.pop() {
			ev.emitDiag(diagnose(ExtraEndIf, span))
			return
		}
		if top.mask.active() {
			ev.emit(DirectiveEvent{
				Kind:      DirectiveEndIf,
				Span:      span,
				Directive: MarkerDirective{Kind: DirectiveEndIf},
			})
		}

	case cst.NodeError:
		if !active {
			return
		}
		dir := decodeError(node)
		ev.emit(DirectiveEvent{Kind: DirectiveError, Span: span, Directive: dir})
		diag := diagnose(ErrorDirective, span)
		diag.Message = dir.Message
		ev.emitDiag(diag)

	case cst.NodeInclude:
		if !active {
			return
		}
		dir, diag := decodeInclude(top.id, node)
		if diag != nil {
			ev.emitDiag(diag)
			return
		}
		ev.emit(DirectiveEvent{Kind: DirectiveInclude, Span: span, Directive: dir})
		ev.include(top, dir, span)

	case cst.NodeLine:
		if !active {
			return
		}
		dir, diag := decodeLine(top.id, node)
		if diag != nil {
			ev.emitDiag(diag)
			return
		}
		// The line after the directive reports as dir.Line.
		top.lineAdjust = dir.Line - top.lines.Line(node.Pos.End)
		if dir.HasFile {
			top.fileNumber = dir.File
		}
		ev.emit(DirectiveEvent{Kind: DirectiveLine, Span: span, Directive: dir})

	default:
		if active {
			diag := diagnose(Unhandled, span)
			diag.NodeKind = node.Kind.String()
			ev.emitDiag(diag)
		}
	}
}

// applyIncludeMode switches the include mode when the extension is one of
// the two include extensions. Disabling either collapses the mode to
// IncludeNone.
func applyIncludeMode(state *ProcessorState, ext Extension) {
	var target IncludeMode
	switch string(ext.Name) {
	case exts.ARBShadingLanguageInclude:
		target = ArbInclude
	case exts.GoogleIncludeDirective:
		target = GoogleInclude
	default:
		return
	}
	if ext.Behavior.Active() {
		state.includeMode = target
	} else {
		state.includeMode = IncludeNone
	}
}

// include resolves and descends into an included file.
func (ev *Events) include(top *fileFrame, dir *IncludeDirective, span Span) {
	if ev.p.state.includeMode == IncludeNone {
		diag := diagnose(IncludeNotEnabled, span)
		diag.Ident = dir.Path
		ev.emitDiag(diag)
		return
	}

	resolved, ok := ev.resolve(top, dir)
	if !ok {
		diag := diagnose(IncludeNotFound, span)
		diag.Ident = dir.Path
		ev.emitDiag(diag)
		return
	}

	canonical, err := ev.p.files.canonicalize(resolved)
	if err != nil {
		ev.emit(IoErrorEvent{Err: err, Span: span})
		return
	}
	id := ev.p.files.assignId(canonical)
	for _, frame := range ev.stack {
		if frame.id == id {
			diag := diagnose(IncludeCycle, span)
			diag.Ident = dir.Path
			ev.emitDiag(diag)
			return
		}
	}
	ev.pushFile(resolved, span)
}

// resolve finds the first existing file for an include path. The quoted
// form searches the including file's directory before the configured search
// paths; the angle-bracket form searches the configured paths only.
func (ev *Events) resolve(top *fileFrame, dir *IncludeDirective) (string, bool) {
	var dirs []string
	if !dir.System {
		dirs = append(dirs, parentDir(ev.p.files.pathOf(top.id)))
	}
	dirs = append(dirs, ev.p.searchPaths...)

	for _, base := range dirs {
		candidate := joinPath(base, dir.Path)
		if ev.p.files.fs.Exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Virtual sources use slash paths; keep their separators, and the operating
// system's for everything else.
func parentDir(p string) string {
	if strings.ContainsRune(p, filepath.Separator) {
		return filepath.Dir(p)
	}
	return path.Dir(p)
}

func joinPath(base, rel string) string {
	if strings.ContainsRune(base, filepath.Separator) {
		return filepath.Join(base, rel)
	}
	return path.Join(base, rel)
}

// expandIdent runs the macro invocation engine on one identifier token.
func (ev *Events) expandIdent(top *fileFrame, tok cst.Token) {
	x := &expander{
		state:       ev.p.state,
		file:        top.id,
		fileNumber:  top.fileNumber,
		currentLine: top.lines.Line(tok.Pos.Start) + top.lineAdjust,
	}
	seed := xtoken{tok: tok, file: top.id}
	out, expanded, diags := x.invoke(seed, &frameReader{frame: top})
	if !expanded {
		ev.emit(TokenEvent{Kind: tok.Kind, Span: spanIn(top.id, tok.Pos), Text: tok.Text})
	} else {
		for _, xt := range out {
			ev.emit(TokenEvent{Kind: xt.tok.Kind, Span: xt.span(), Text: xt.tok.Text})
		}
	}
	for _, diag := range diags {
		ev.emitDiag(diag)
	}
}

// frameReader adapts the driver's cursor to the expansion engine. It yields
// the tokens following an invocation; a directive node ends the stream, so
// macro calls never swallow directives.
type frameReader struct {
	frame *fileFrame
}

func (r *frameReader) next() (xtoken, bool) {
	if r.frame.idx >= len(r.frame.elements) {
		return xtoken{}, false
	}
	tok, ok := r.frame.elements[r.frame.idx].(cst.Token)
	if !ok {
		return xtoken{}, false
	}
	r.frame.idx++
	return xtoken{tok: tok, file: r.frame.id}, true
}

func (r *frameReader) peekAt(i int) (xtoken, bool) {
	idx := r.frame.idx + i
	if idx >= len(r.frame.elements) {
		return xtoken{}, false
	}
	for j := r.frame.idx; j <= idx; j++ {
		if _, ok := r.frame.elements[j].(cst.Token); !ok {
			return xtoken{}, false
		}
	}
	tok := r.frame.elements[idx].(cst.Token)
	return xtoken{tok: tok, file: r.frame.id}, true
}
