package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/zackarychapple/rspack/internal/codegen"
	"github.com/zackarychapple/rspack/internal/config"
	"github.com/zackarychapple/rspack/internal/external"
	"github.com/zackarychapple/rspack/internal/graph"
)

// manifest is the YAML input describing a set of configured externals plus
// the output options and pre-assigned module ids to generate against. It
// exists so generated glue can be inspected without running a full build.
type manifest struct {
	Output    config.OutputOptions `yaml:"output"`
	Externals []manifestExternal   `yaml:"externals"`

	// Assigned module ids keyed by module identifier, standing in for the id
	// assignment phase of a real compilation.
	IDs map[string]string `yaml:"ids"`
}

type manifestExternal struct {
	Request     string `yaml:"request"`
	Type        string `yaml:"type"`
	UserRequest string `yaml:"userRequest"`
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "externals <manifest.yaml>",
		Short: "Generate external-module glue code from a manifest",
		Long: "Reads a YAML manifest of configured externals, runs build and code\n" +
			"generation for each of them, and prints the chunk preamble followed by\n" +
			"the per-module sources, auxiliary data, runtime globals, and hashes.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := zap.NewNop()
			if verbose {
				var err error
				if log, err = zap.NewDevelopment(); err != nil {
					return err
				}
			}
			defer log.Sync()
			return run(cmd, args[0], log)
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-module generation details")
	return cmd
}

func run(cmd *cobra.Command, path string, log *zap.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	options := config.Options{Output: m.Output}
	options.ApplyDefaults()

	ids := graph.ModuleIDMap{}
	for identifier, id := range m.IDs {
		ids[identifier] = id
	}
	compilation := &graph.Compilation{
		Options:     &options,
		ModuleGraph: ids,
	}

	// Dedupe by identity the way the module graph would: two externals with
	// the same type and request are the same graph node.
	var modules []*external.ExternalModule
	seen := map[string]bool{}
	for _, entry := range m.Externals {
		mod := external.New(entry.Request, entry.Type, entry.UserRequest)
		if seen[mod.Identifier()] {
			log.Info("skipping duplicate external", zap.String("identifier", mod.Identifier()))
			continue
		}
		seen[mod.Identifier()] = true
		modules = append(modules, mod)
	}

	ctx := context.Background()
	var chunkFragments codegen.ChunkInitFragments
	out := cmd.OutOrStdout()

	type generated struct {
		module *external.ExternalModule
		result *codegen.CodeGenerationResult
	}
	var results []generated

	for _, mod := range modules {
		if _, err := mod.Build(ctx, graph.BuildContext{}); err != nil {
			return err
		}
		result, err := mod.CodeGeneration(compilation)
		if err != nil {
			return err
		}
		chunkFragments.AddAll(result.ChunkInitFragments)

		fields := []zap.Field{
			zap.String("identifier", mod.Identifier()),
			zap.Strings("runtimeGlobals", result.RuntimeRequirements.Names()),
			zap.Int("initFragments", result.ChunkInitFragments.Len()),
		}
		if hash, ok := result.Hash(); ok {
			fields = append(fields, zap.Uint64("hash", hash))
		}
		log.Info("generated external", fields...)

		results = append(results, generated{module: mod, result: result})
	}

	if preamble := chunkFragments.Render(); preamble != "" {
		fmt.Fprintf(out, "// chunk preamble\n%s\n", preamble)
	}

	for _, g := range results {
		fmt.Fprintf(out, "// %s\n", g.module.ReadableIdentifier(""))
		for _, sourceType := range g.result.SourceTypes() {
			content, _ := g.result.Source(sourceType)
			fmt.Fprintf(out, "[%s] %s\n", sourceType, content)
		}
		if len(g.result.Data) > 0 {
			keys := make([]string, 0, len(g.result.Data))
			for key := range g.result.Data {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(out, "[data] %s = %s\n", key, g.result.Data[key])
			}
		}
		if names := g.result.RuntimeRequirements.Names(); len(names) > 0 {
			fmt.Fprintf(out, "[runtime] %s\n", strings.Join(names, ", "))
		}
		if hash, ok := g.result.Hash(); ok {
			fmt.Fprintf(out, "[hash] %016x\n", hash)
		}
		fmt.Fprintln(out)
	}

	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
