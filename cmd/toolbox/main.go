package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/petasbytes/go-toolbox/internal/provider"
	"github.com/petasbytes/go-toolbox/internal/scan"
	"github.com/petasbytes/go-toolbox/internal/schemaconv"
	"github.com/petasbytes/go-toolbox/toolbox"
	"github.com/petasbytes/go-toolbox/tools"
)

func main() {
	schemaDir := flag.String("schema-dir", "", "directory for generated schema files (default TBX_SCHEMA_DIR or \"schemas\")")
	exportPath := flag.String("export", "", "write the resolved set as an Anthropic request skeleton JSON to this file")
	model := flag.String("model", "", "model for the exported request skeleton (default "+string(provider.DefaultModel)+")")
	strict := flag.Bool("strict", false, "treat schema shape mismatches as registration failures")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	reg := toolbox.New(toolbox.Options{
		Convert:   schemaconv.Convert,
		SchemaDir: *schemaDir,
		Logger:    logger,
		Strict:    *strict,
	})

	// Builtin tools register at this single startup point so registration
	// order is deterministic.
	if err := toolbox.RegisterAll(reg, tools.Manifest()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: builtin registration: %v\n", err)
	}

	ctx := context.Background()
	identifiers := flag.Args()

	var resolved map[string]*toolbox.Tool
	if len(identifiers) == 0 {
		resolved = reg.All()
	} else {
		resolved = reg.Resolve(ctx, identifiers, scan.Discoverer(reg))
	}

	names := make([]string, 0, len(resolved))
	for name := range resolved {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := resolved[name]
		fmt.Printf("%-24s %-16s %s\n", t.Name, strings.Join(t.Tags, ","), t.Path)
	}

	if *exportPath != "" {
		params := provider.MessageParams(anthropic.Model(*model), 0, resolved)
		b, err := json.MarshalIndent(params, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: encode export: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*exportPath, b, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "error: write export: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "exported %d tools to %s\n", len(params.Tools), *exportPath)
	}
}
