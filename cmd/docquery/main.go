// Copyright 2025 Quester Labs
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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/quester-io/docquery"
	"github.com/quester-io/docquery/ai"
)

func main() {
	app := &cli.App{
		Name:  "docquery",
		Usage: "Ask questions about a directory of documents",
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
				Name:   "build",
				Usage:  "Index the documents under a root directory",
				Action: buildCommand,
				Flags:  engineFlags(),
			},
			{
				Name:      "ask",
				Usage:     "Ask a question against an indexed root",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags:     engineFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// engineFlags are shared by every command that constructs an engine.
func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "root",
			Aliases:  []string{"r"},
			Usage:    "Directory of documents to index",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:  "ext",
			Usage: "Recognized file extensions (repeatable); default is the built-in set",
		},
		&cli.IntFlag{
			Name:  "chunk-size",
			Usage: "Chunk budget in words",
			Value: 512,
		},
		&cli.IntFlag{
			Name:  "chunk-overlap",
			Usage: "Words carried between adjacent chunks",
			Value: 50,
		},
		&cli.IntFlag{
			Name:  "top-k",
			Usage: "Number of chunks retrieved per question",
			Value: 3,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "llm-host",
			Usage: "Generation service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "llm-model",
			Usage: "Generation model name",
			Value: "llama3.2",
		},
		&cli.DurationFlag{
			Name:  "generate-timeout",
			Usage: "Timeout for a single generation call",
			Value: 120 * time.Second,
		},
		&cli.StringFlag{
			Name:  "cache",
			Usage: "Directory for the persistent embedding cache (disabled if empty)",
		},
	}
}

// newEngine constructs an engine from the shared flags.
func newEngine(c *cli.Context) (*docquery.Engine, error) {
	cfg := docquery.Config{
		Root:         c.String("root"),
		Extensions:   c.StringSlice("ext"),
		ChunkSize:    c.Int("chunk-size"),
		ChunkOverlap: c.Int("chunk-overlap"),
		TopK:         c.Int("top-k"),
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGeneratorHost(c.String("llm-host")),
		ai.WithGeneratorModel(c.String("llm-model")),
		ai.WithGenerateTimeout(c.Duration("generate-timeout")),
	)

	opts := []docquery.Option{docquery.WithAIConfig(aiConfig)}
	if cachePath := c.String("cache"); cachePath != "" {
		opts = append(opts, docquery.WithCachePath(cachePath))
	}

	return docquery.New(cfg, opts...)
}

func buildCommand(c *cli.Context) error {
	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	report, err := engine.Build(context.Background())
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Printf("Indexed %d documents into %d chunks in %s\n",
		report.Documents, report.Chunks, report.Duration.Round(time.Millisecond))
	if len(report.Skipped) > 0 {
		fmt.Printf("Skipped %d files:\n", len(report.Skipped))
		for _, fe := range report.Skipped {
			fmt.Printf("  - %s: %v\n", fe.Path, fe.Err)
		}
	}
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if _, err := engine.Build(context.Background()); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	answer, err := engine.Ask(context.Background(), question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	fmt.Println(answer.Text)
	if len(answer.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, source := range answer.Sources {
			fmt.Printf("  - %s\n", source)
		}
	}
	return nil
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
