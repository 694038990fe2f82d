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
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quester-io/docquery/core"
)

// Loader discovers and extracts documents under a root directory.
type Loader struct {
	root       string
	extractors map[string]Extractor // capability table, keyed by lowercase extension
	logger     *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// WithExtractor overrides or adds the extractor for one extension.
// The extension must be part of the recognized set passed to New.
func WithExtractor(ext string, fn Extractor) Option {
	return func(l *Loader) error {
		if fn == nil {
			return fmt.Errorf("extractor for %q is nil", ext)
		}
		ext = strings.ToLower(ext)
		if _, ok := l.extractors[ext]; !ok {
			return fmt.Errorf("extension %q is not in the recognized set", ext)
		}
		l.extractors[ext] = fn
		return nil
	}
}

// Result is the outcome of one load pass: the documents that extracted
// cleanly, and the per-file failures that were skipped.
type Result struct {
	Documents []core.Document
	Skipped   []FileError
}

// New creates a loader for the given root and recognized extensions.
// The extractor for each extension is resolved here, once.
func New(root string, extensions []string, opts ...Option) (*Loader, error) {
	if root == "" {
		return nil, ErrRootRequired
	}
	if len(extensions) == 0 {
		return nil, ErrNoExtensions
	}

	extractors := make(map[string]Extractor, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extractors[ext] = extractorFor(ext)
	}

	l := &Loader{
		root:       root,
		extractors: extractors,
		logger:     slog.Default().With("component", "loader"),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// Load walks the root recursively and extracts one document per matching
// file. Files with unrecognized extensions are silently skipped. Files that
// fail to read or extract are skipped and reported in Result.Skipped; the
// load continues. Two files normalizing to the same source id abort the load
// with ErrDuplicateSource before any indexing can proceed.
//
// Matching paths are sorted, so output ordering is deterministic across runs.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	paths, err := l.discover()
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	result := &Result{}
	seen := make(map[string]string, len(paths)) // source id -> path

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sourceID, err := l.sourceID(path)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[sourceID]; ok {
			return nil, fmt.Errorf("%w: %q from both %s and %s", ErrDuplicateSource, sourceID, prev, path)
		}
		seen[sourceID] = path

		doc, err := l.loadFile(path, sourceID)
		if err != nil {
			l.logger.Warn("skipping file", "path", path, "err", err)
			result.Skipped = append(result.Skipped, FileError{Path: path, Err: err})
			continue
		}

		result.Documents = append(result.Documents, *doc)
	}

	l.logger.Info("load complete",
		"root", l.root,
		"documents", len(result.Documents),
		"skipped", len(result.Skipped))

	return result, nil
}

// discover collects all files under the root whose extension is recognized.
func (l *Loader) discover() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := l.extractors[ext]; ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", l.root, err)
	}
	return paths, nil
}

// sourceID derives the normalized source id for a file: the root-relative
// path, slash-separated and lowercased. Lowercasing makes collisions between
// case-variant paths explicit instead of platform-dependent.
func (l *Loader) sourceID(path string) (string, error) {
	rel, err := filepath.Rel(l.root, path)
	if err != nil {
		return "", err
	}
	return strings.ToLower(filepath.ToSlash(rel)), nil
}

// loadFile reads and extracts a single document.
func (l *Loader) loadFile(path, sourceID string) (*core.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	text, err := l.extractors[ext](filepath.Base(path), data)
	if err != nil {
		return nil, err
	}

	doc := &core.Document{
		SourceID: sourceID,
		Text:     text,
		Format:   formatTag(ext),
	}
	if err := core.ValidateDocument(doc); err != nil {
		if text == "" {
			return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, path)
		}
		return nil, err
	}
	return doc, nil
}
