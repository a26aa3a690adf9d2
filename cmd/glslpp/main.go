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

// glslpp preprocesses GLSL shader sources and prints the expanded text, or
// a JSON event dump for tooling.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yorkie/glsl-lang/internal/collections"
	"github.com/yorkie/glsl-lang/internal/index"
	"github.com/yorkie/glsl-lang/pp"
	"github.com/yorkie/glsl-lang/pp/exts"
)

var version = "0.1.0"

// config mirrors the flag surface so invocations can be kept in a file.
// Flags given on the command line extend the file's lists and override its
// include mode.
type config struct {
	Defines      []string `yaml:"defines"`
	IncludePaths []string `yaml:"include_paths"`
	IncludeMode  string   `yaml:"include_mode"`
}

var (
	configPath     string
	defineFlags    []string
	includePaths   []string
	includeMode    string
	dumpEvents     bool
	dumpIndex      bool
	listExtensions bool
	verbose        bool
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "glslpp: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "glslpp [flags] <shader>...",
		Short: "glslpp runs the GLSL preprocessor over shader sources",
		Long: `glslpp expands each shader through the GLSL preprocessor and prints
the resulting token text. Directives are interpreted: macros expand,
conditionals select their groups and, when an include mode is enabled,
#include directives are inlined. With --events the full event stream is
printed as JSON instead, one event per line.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listExtensions {
				for name := range exts.All() {
					fmt.Fprintln(out, name)
				}
				return nil
			}
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cfg.Defines = append(cfg.Defines, defineFlags...)
			cfg.IncludePaths = append(cfg.IncludePaths, includePaths...)
			if includeMode != "" {
				cfg.IncludeMode = includeMode
			}
			if dumpIndex {
				return writeIncludeIndex(out, cfg)
			}
			if len(args) == 0 {
				return cmd.Help()
			}
			for _, shader := range args {
				if err := run(out, cfg, shader); err != nil {
					return err
				}
			}
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML config file with defines and include paths")
	flags.StringArrayVarP(&defineFlags, "define", "D", nil, "predefine a macro, NAME or NAME=VALUE")
	flags.StringArrayVarP(&includePaths, "include", "I", nil, "include search path (doublestar globs allowed)")
	flags.StringVar(&includeMode, "include-mode", "", "enable includes up front: arb or google")
	flags.BoolVar(&dumpEvents, "events", false, "print the JSON event stream instead of expanded text")
	flags.BoolVar(&dumpIndex, "include-index", false, "index the include search paths and print the mapping as JSON")
	flags.BoolVar(&listExtensions, "list-extensions", false, "print the known extension names and exit")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log per-file statistics")
	return rootCmd
}

func loadConfig(path string) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func buildState(cfg config) (*pp.ProcessorState, error) {
	state := pp.DefaultState()
	for _, define := range cfg.Defines {
		name, value, _ := strings.Cut(define, "=")
		def, err := pp.ParseDefineSpec(name, value)
		if err != nil {
			return nil, fmt.Errorf("define %s: %w", define, err)
		}
		if err := state.Define(def); err != nil {
			return nil, fmt.Errorf("define %s: %w", define, err)
		}
	}
	switch cfg.IncludeMode {
	case "":
	case "arb":
		state.EnableIncludeMode(pp.ArbInclude)
	case "google":
		state.EnableIncludeMode(pp.GoogleInclude)
	default:
		return nil, fmt.Errorf("unknown include mode %q", cfg.IncludeMode)
	}
	return state, nil
}

func run(out io.Writer, cfg config, shader string) error {
	state, err := buildState(cfg)
	if err != nil {
		return err
	}
	searchPaths, err := pp.ExpandSearchPaths(cfg.IncludePaths)
	if err != nil {
		return err
	}

	processor := pp.NewProcessor(state, pp.NewOsFileSystem())
	processor.SetSearchPaths(searchPaths...)
	events := processor.Process(shader).Collect()

	if verbose {
		stats := countEvents(events)
		log.Printf("%s: %d tokens, %d directives, %d errors",
			shader, stats.tokens, stats.directives, stats.errors)
	}

	if dumpEvents {
		return writeEvents(out, events)
	}
	return writeText(out, shader, events)
}

type eventStats struct {
	tokens, directives, errors int
}

func countEvents(events []pp.Event) eventStats {
	var stats eventStats
	for _, event := range events {
		switch event.(type) {
		case pp.TokenEvent:
			stats.tokens++
		case pp.DirectiveEvent:
			stats.directives++
		case pp.ErrorEvent, pp.IoErrorEvent:
			stats.errors++
		}
	}
	return stats
}

// writeIncludeIndex scans the configured search paths and prints which file
// each include path resolves to, flagging paths served by several roots.
func writeIncludeIndex(out io.Writer, cfg config) error {
	searchPaths, err := pp.ExpandSearchPaths(cfg.IncludePaths)
	if err != nil {
		return err
	}
	idx, err := index.Build(searchPaths)
	if err != nil {
		return err
	}
	_, err = out.Write(append(idx.Encode(), '\n'))
	return err
}

func writeEvents(out io.Writer, events []pp.Event) error {
	encoder := json.NewEncoder(out)
	for _, event := range events {
		if err := encoder.Encode(event); err != nil {
			return err
		}
	}
	return nil
}

func writeText(out io.Writer, shader string, events []pp.Event) error {
	var text strings.Builder
	var diags []string
	for _, event := range events {
		switch e := event.(type) {
		case pp.TokenEvent:
			text.WriteString(e.Text)
		case pp.ErrorEvent:
			diags = append(diags, e.Diag.Error())
		case pp.IoErrorEvent:
			diags = append(diags, e.Err.Error())
		}
	}
	if _, err := io.WriteString(out, text.String()); err != nil {
		return err
	}
	if len(diags) > 0 {
		lines := collections.MapSlice(diags, func(d string) string {
			return shader + ": " + d
		})
		return fmt.Errorf("%d diagnostics:\n%s", len(diags), strings.Join(lines, "\n"))
	}
	return nil
}
