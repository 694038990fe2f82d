package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestEngineFlags(t *testing.T) {
	flags := engineFlags()

	find := func(name string) cli.Flag {
		for _, flag := range flags {
			for _, n := range flag.Names() {
				if n == name {
					return flag
				}
			}
		}
		return nil
	}

	t.Run("root is required", func(t *testing.T) {
		rootFlag, ok := find("root").(*cli.StringFlag)
		require.True(t, ok)
		assert.True(t, rootFlag.Required)
	})

	t.Run("chunking defaults", func(t *testing.T) {
		sizeFlag, ok := find("chunk-size").(*cli.IntFlag)
		require.True(t, ok)
		assert.Equal(t, 512, sizeFlag.Value)

		overlapFlag, ok := find("chunk-overlap").(*cli.IntFlag)
		require.True(t, ok)
		assert.Equal(t, 50, overlapFlag.Value)

		topKFlag, ok := find("top-k").(*cli.IntFlag)
		require.True(t, ok)
		assert.Equal(t, 3, topKFlag.Value)
	})

	t.Run("model endpoints default to a local server", func(t *testing.T) {
		hostFlag, ok := find("embedding-host").(*cli.StringFlag)
		require.True(t, ok)
		assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)

		llmFlag, ok := find("llm-host").(*cli.StringFlag)
		require.True(t, ok)
		assert.Equal(t, "http://localhost:11434/v1", llmFlag.Value)
	})

	t.Run("cache is off by default", func(t *testing.T) {
		cacheFlag, ok := find("cache").(*cli.StringFlag)
		require.True(t, ok)
		assert.Empty(t, cacheFlag.Value)
	})
}

func TestSetupLogger(t *testing.T) {
	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info"},
		},
		Before: setupLogger,
		Action: func(c *cli.Context) error { return nil },
	}

	t.Run("valid level", func(t *testing.T) {
		err := app.Run([]string{"docquery", "--log-level", "debug"})
		require.NoError(t, err)
		assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
	})

	t.Run("invalid level rejected", func(t *testing.T) {
		err := app.Run([]string{"docquery", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestAskRequiresQuestion(t *testing.T) {
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "ask",
				Action: askCommand,
				Flags:  engineFlags(),
			},
		},
	}

	err := app.Run([]string{"docquery", "ask", "--root", t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "question is required")
}
