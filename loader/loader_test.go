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


package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFiles lays out a fixture tree under a fresh temp dir.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, text := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	}
	return root
}

func TestNewValidation(t *testing.T) {
	t.Run("empty root", func(t *testing.T) {
		_, err := New("", []string{".txt"})
		assert.ErrorIs(t, err, ErrRootRequired)
	})

	t.Run("no extensions", func(t *testing.T) {
		_, err := New(t.TempDir(), nil)
		assert.ErrorIs(t, err, ErrNoExtensions)
	})

	t.Run("extensions normalized", func(t *testing.T) {
		root := writeFiles(t, map[string]string{"a.TXT": "hello"})
		l, err := New(root, []string{"txt"}) // no leading dot
		require.NoError(t, err)

		result, err := l.Load(context.Background())
		require.NoError(t, err)
		require.Len(t, result.Documents, 1)
		assert.Equal(t, "a.txt", result.Documents[0].SourceID)
	})

	t.Run("extractor override for unknown extension", func(t *testing.T) {
		_, err := New(t.TempDir(), []string{".txt"},
			WithExtractor(".xyz", ExtractPlainText))
		assert.Error(t, err)
	})
}

func TestLoadRecursiveAndSorted(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"zebra.txt":      "last",
		"docs/guide.txt": "nested",
		"alpha.txt":      "first",
		"ignored.bin":    "not recognized",
	})

	l, err := New(root, []string{".txt"})
	require.NoError(t, err)

	result, err := l.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Documents, 3)
	assert.Equal(t, "alpha.txt", result.Documents[0].SourceID)
	assert.Equal(t, "docs/guide.txt", result.Documents[1].SourceID)
	assert.Equal(t, "zebra.txt", result.Documents[2].SourceID)
	assert.Empty(t, result.Skipped)
}

func TestLoadFormats(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"notes.md":  "# Title\n\nSome **bold** prose.",
		"page.html": "<html><body><p>Visible &amp; text</p></body></html>",
		"plain.txt": "just text",
	})

	l, err := New(root, []string{".md", ".html", ".txt"})
	require.NoError(t, err)

	result, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Documents, 3)

	byID := make(map[string]string, len(result.Documents))
	formats := make(map[string]string, len(result.Documents))
	for _, doc := range result.Documents {
		byID[doc.SourceID] = doc.Text
		formats[doc.SourceID] = doc.Format
	}

	assert.Equal(t, "Title\n\nSome bold prose.", byID["notes.md"])
	assert.Equal(t, "markdown", formats["notes.md"])
	assert.Equal(t, "Visible & text", byID["page.html"])
	assert.Equal(t, "html", formats["page.html"])
	assert.Equal(t, "just text", byID["plain.txt"])
	assert.Equal(t, "text", formats["plain.txt"])
}

func TestLoadSkipsRecoverableFailures(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"ok.txt":     "fine",
		"report.pdf": "%PDF-1.4 binary stuff",
		"empty.md":   "",
	})
	// Invalid UTF-8 payload
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.txt"), []byte{0xff, 0xfe, 0x01}, 0o644))

	l, err := New(root, []string{".txt", ".pdf", ".md"})
	require.NoError(t, err)

	result, err := l.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	assert.Equal(t, "ok.txt", result.Documents[0].SourceID)

	require.Len(t, result.Skipped, 3)
	reasons := make(map[string]error, len(result.Skipped))
	for _, fe := range result.Skipped {
		reasons[filepath.Base(fe.Path)] = fe.Err
	}
	assert.ErrorIs(t, reasons["bad.txt"], ErrInvalidEncoding)
	assert.ErrorIs(t, reasons["report.pdf"], ErrUnsupportedFormat)
	assert.ErrorIs(t, reasons["empty.md"], ErrEmptyDocument)
}

func TestLoadDuplicateSourceID(t *testing.T) {
	// Case-variant names normalize to the same source id.
	root := writeFiles(t, map[string]string{
		"Readme.txt": "one",
		"readme.txt": "two",
	})

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	if len(entries) < 2 {
		t.Skip("filesystem is case-insensitive")
	}

	l, err := New(root, []string{".txt"})
	require.NoError(t, err)

	_, err = l.Load(context.Background())
	assert.ErrorIs(t, err, ErrDuplicateSource)
}

func TestLoadContextCancellation(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "x"})

	l, err := New(root, []string{".txt"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = l.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithExtractorOverride(t *testing.T) {
	root := writeFiles(t, map[string]string{"data.csv": "a,b\n1,2"})

	l, err := New(root, []string{".csv"},
		WithExtractor(".csv", func(_ string, data []byte) (string, error) {
			return "rows: " + string(data), nil
		}))
	require.NoError(t, err)

	result, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Documents, 1)
	assert.Equal(t, "rows: a,b\n1,2", result.Documents[0].Text)
}

func TestFileErrorUnwrap(t *testing.T) {
	fe := &FileError{Path: "/x/y.txt", Err: ErrInvalidEncoding}
	assert.True(t, errors.Is(fe, ErrInvalidEncoding))
	assert.Contains(t, fe.Error(), "/x/y.txt")
}
