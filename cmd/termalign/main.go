// Copyright 2025 Poiesic Systems
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


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/rishika0212/termalign/ai"
	"github.com/rishika0212/termalign/ai/openai"
	"github.com/rishika0212/termalign/alias"
	"github.com/rishika0212/termalign/config"
	"github.com/rishika0212/termalign/core"
	"github.com/rishika0212/termalign/mapping"
	"github.com/rishika0212/termalign/shortlist"
	badgerstore "github.com/rishika0212/termalign/storage/badger"
	"github.com/rishika0212/termalign/translate"
)

func main() {
	app := &cli.App{
		Name:  "termalign",
		Usage: "Align traditional-medicine code systems to biomedical terminologies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the alignment pipeline for one source system",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "Path to YAML configuration file",
					},
					&cli.StringFlag{
						Name:     "source",
						Aliases:  []string{"s"},
						Usage:    "Source system name (e.g. NAMASTE-Ayurveda)",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:     "target",
						Aliases:  []string{"t"},
						Usage:    "Target system as SYSTEM=RELEASE_DIR, repeatable",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "overrides-dir",
						Usage: "Directory holding per-system synonym override files",
					},
					&cli.StringFlag{
						Name:  "translation-host",
						Usage: "Translation service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "translation-model",
						Usage: "Translation model name",
						Value: "aya:8b",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL (defaults to translation-host)",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name; empty disables the shortlist",
					},
					&cli.StringFlag{
						Name:  "source-lang",
						Usage: "Pin the source language tag instead of detecting it",
					},
					&cli.BoolFlag{
						Name:  "fast",
						Usage: "Tighten prefilters for a quicker, lossier run",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concept worker pool size (0 = half the CPUs)",
					},
					&cli.StringFlag{
						Name:    "out-dir",
						Aliases: []string{"o"},
						Usage:   "Directory for the run report, review CSV, and unmapped CSV",
						Value:   ".",
					},
				},
			},
			{
				Name:   "dry-run-translations",
				Usage:  "Translate a whole system and write an audit without matching",
				Action: dryRunCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "Path to YAML configuration file",
					},
					&cli.StringFlag{
						Name:     "source",
						Aliases:  []string{"s"},
						Usage:    "Source system name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "overrides-dir",
						Usage: "Directory holding per-system synonym override files",
					},
					&cli.StringFlag{
						Name:  "translation-host",
						Usage: "Translation service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "translation-model",
						Usage: "Translation model name",
						Value: "aya:8b",
					},
					&cli.StringFlag{
						Name:  "source-lang",
						Usage: "Pin the source language tag instead of detecting it",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Audit CSV output path (default stdout)",
					},
				},
			},
			{
				Name:   "seed-concepts",
				Usage:  "Load concepts from a JSON file into the store",
				Action: seedConceptsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "JSON file with concept records",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "system",
						Usage: "System name applied to records missing one",
					},
				},
			},
			{
				Name:   "build-alias-index",
				Usage:  "Build or refresh the alias index of a target system",
				Action: buildAliasIndexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "system",
						Usage:    "Target system name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "dir",
						Usage:    "Directory of release JSON files",
						Required: true,
					},
				},
			},
			{
				Name:   "precompute-embeddings",
				Usage:  "Precompute the embedding artifact of a target system",
				Action: precomputeEmbeddingsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "system",
						Usage:    "Target system name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "dir",
						Usage:    "Directory of release JSON files",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of aliases to embed per request",
						Value: 32,
					},
				},
			},
			{
				Name:   "export-mappings",
				Usage:  "Export stored mappings as JSON",
				Action: exportMappingsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "source",
						Aliases: []string{"s"},
						Usage:   "Filter by source system (empty exports everything)",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output path (default stdout)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.Bool("fast") {
		cfg.Fast = true
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("overrides-dir") {
		cfg.OverridesDir = c.String("overrides-dir")
	}

	targets, err := parseTargets(c.StringSlice("target"))
	if err != nil {
		return err
	}

	stores, err := badgerstore.OpenStores(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer stores.Close()

	sourceSystem := c.String("source")

	aiConfig := ai.NewConfig(
		ai.WithTranslationHost(c.String("translation-host")),
		ai.WithTranslationModel(c.String("translation-model")),
		ai.WithEmbeddingHost(embeddingHost(c)),
		ai.WithEmbeddingModel(orDummy(c.String("embedding-model"))),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	translator, err := openai.NewTranslator(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	validator, err := newValidator(c, translator, stores, cfg, sourceSystem)
	if err != nil {
		return err
	}

	var shortlister *shortlist.Shortlister
	if c.String("embedding-model") != "" {
		embedder, err := openai.NewEmbedder(aiConfig)
		if err != nil {
			return fmt.Errorf("failed to create embedder: %w", err)
		}
		shortlister = shortlist.NewShortlister(embedder, stores.Embeddings, shortlist.WithTopK(cfg.TopK))
	}

	orchestrator, err := mapping.NewOrchestrator(cfg, stores.Concepts, stores.Mappings, stores.Aliases, validator, shortlister)
	if err != nil {
		return err
	}
	defer orchestrator.Release()

	result, err := orchestrator.Run(ctx, sourceSystem, targets)
	if err != nil {
		return fmt.Errorf("alignment run failed: %w", err)
	}

	outDir := c.String("out-dir")
	if err := writeRunOutputs(outDir, sourceSystem, result); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Accepted: %d (inserted %d)\n", result.Report.Accepted, result.Report.Inserted)
	fmt.Fprintf(os.Stderr, "Review:   %d\n", result.Report.ReviewCount)
	fmt.Fprintf(os.Stderr, "Unmapped: %d\n", result.Report.UnmappedCount)
	return nil
}

func dryRunCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("overrides-dir") {
		cfg.OverridesDir = c.String("overrides-dir")
	}

	stores, err := badgerstore.OpenStores(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer stores.Close()

	sourceSystem := c.String("source")

	aiConfig := ai.NewConfig(
		ai.WithTranslationHost(c.String("translation-host")),
		ai.WithTranslationModel(c.String("translation-model")),
		ai.WithEmbeddingHost(c.String("translation-host")),
		ai.WithEmbeddingModel("dummy"),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	translator, err := openai.NewTranslator(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	validator, err := newValidator(c, translator, stores, cfg, sourceSystem)
	if err != nil {
		return err
	}

	orchestrator, err := mapping.NewOrchestrator(cfg, stores.Concepts, stores.Mappings, stores.Aliases, validator, nil)
	if err != nil {
		return err
	}
	defer orchestrator.Release()

	audits, err := orchestrator.DryRunTranslations(ctx, sourceSystem)
	if err != nil {
		return fmt.Errorf("translation dry run failed: %w", err)
	}

	out, closeOut, err := openOutput(c.String("out"))
	if err != nil {
		return err
	}
	defer closeOut()
	return mapping.WriteTranslationAuditCSV(out, audits)
}

// conceptFile is the seeding input format: a JSON array of concept records.
type conceptFile []struct {
	System     string `json:"system"`
	Code       string `json:"code"`
	Display    string `json:"display"`
	Definition string `json:"definition"`
}

func seedConceptsCommand(c *cli.Context) error {
	ctx := context.Background()

	data, err := os.ReadFile(c.String("file"))
	if err != nil {
		return err
	}
	var parsed conceptFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parsing %s: %w", c.String("file"), err)
	}

	defaultSystem := c.String("system")
	concepts := make([]*core.SourceConcept, 0, len(parsed))
	for _, rec := range parsed {
		system := rec.System
		if system == "" {
			system = defaultSystem
		}
		concepts = append(concepts, &core.SourceConcept{
			System:     system,
			Code:       rec.Code,
			Display:    rec.Display,
			Definition: rec.Definition,
		})
	}

	stores, err := badgerstore.OpenStores(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer stores.Close()

	if err := stores.Concepts.AddConcepts(ctx, concepts...); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Seeded %d concepts\n", len(concepts))
	return nil
}

func buildAliasIndexCommand(c *cli.Context) error {
	ctx := context.Background()

	stores, err := badgerstore.OpenStores(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer stores.Close()

	builder := alias.NewBuilder(c.String("dir"), stores.Aliases)
	entries, err := builder.BuildOrLoad(ctx, c.String("system"))
	if err != nil {
		return fmt.Errorf("alias index build failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Alias index ready: %d entries\n", len(entries))
	return nil
}

func precomputeEmbeddingsCommand(c *cli.Context) error {
	ctx := context.Background()

	stores, err := badgerstore.OpenStores(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer stores.Close()

	system := c.String("system")
	builder := alias.NewBuilder(c.String("dir"), stores.Aliases)
	entries, err := builder.BuildOrLoad(ctx, system)
	if err != nil {
		return fmt.Errorf("alias index build failed: %w", err)
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithTranslationHost(c.String("embedding-host")),
		ai.WithTranslationModel("dummy"),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	shortlister := shortlist.NewShortlister(embedder, stores.Embeddings)
	if err := shortlister.Precompute(ctx, system, entries, c.Int("batch-size")); err != nil {
		return fmt.Errorf("embedding precompute failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Embedded %d target codes\n", len(entries))
	return nil
}

func exportMappingsCommand(c *cli.Context) error {
	ctx := context.Background()

	stores, err := badgerstore.OpenStores(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer stores.Close()

	mappings, err := stores.Mappings.ListMappings(ctx, c.String("source"))
	if err != nil {
		return fmt.Errorf("listing mappings failed: %w", err)
	}

	out, closeOut, err := openOutput(c.String("out"))
	if err != nil {
		return err
	}
	defer closeOut()
	return mapping.WriteMappingsJSON(out, mappings)
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.Default(), nil
}

// parseTargets splits SYSTEM=DIR pairs.
func parseTargets(specs []string) ([]mapping.Target, error) {
	targets := make([]mapping.Target, 0, len(specs))
	for _, spec := range specs {
		system, dir, ok := strings.Cut(spec, "=")
		if !ok || system == "" || dir == "" {
			return nil, fmt.Errorf("invalid target %q: want SYSTEM=RELEASE_DIR", spec)
		}
		targets = append(targets, mapping.Target{System: system, AliasDir: dir})
	}
	return targets, nil
}

func newValidator(c *cli.Context, translator ai.Translator, stores *badgerstore.Stores, cfg *config.Config, sourceSystem string) (*translate.Validator, error) {
	opts := []translate.Option{}

	overrides, err := translate.LoadSystemOverrides(cfg.OverridesDir, sourceSystem)
	if err != nil {
		return nil, fmt.Errorf("loading overrides: %w", err)
	}
	if len(overrides) > 0 {
		opts = append(opts, translate.WithOverrides(sourceSystem, overrides))
	}
	if tag := c.String("source-lang"); tag != "" {
		opts = append(opts, translate.WithFixedLangTag(tag))
	}

	return translate.NewValidator(translator, stores.Translations, opts...), nil
}

// embeddingHost defaults to the translation host when not given separately.
func embeddingHost(c *cli.Context) string {
	if host := c.String("embedding-host"); host != "" {
		return host
	}
	return c.String("translation-host")
}

// orDummy keeps ai.Config validation happy when the shortlist is disabled.
func orDummy(model string) string {
	if model == "" {
		return "dummy"
	}
	return model
}

func writeRunOutputs(dir, sourceSystem string, result *mapping.RunResult) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	prefix := strings.ToLower(strings.ReplaceAll(sourceSystem, "/", "_"))

	reportFile, err := os.Create(filepath.Join(dir, prefix+"_report.json"))
	if err != nil {
		return err
	}
	defer reportFile.Close()
	if err := mapping.WriteReport(reportFile, result.Report); err != nil {
		return err
	}

	reviewFile, err := os.Create(filepath.Join(dir, prefix+"_review.csv"))
	if err != nil {
		return err
	}
	defer reviewFile.Close()
	if err := mapping.WriteReviewCSV(reviewFile, result.Reviews); err != nil {
		return err
	}

	unmappedFile, err := os.Create(filepath.Join(dir, prefix+"_unmapped.csv"))
	if err != nil {
		return err
	}
	defer unmappedFile.Close()
	return mapping.WriteUnmappedCSV(unmappedFile, result.Unmapped)
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
