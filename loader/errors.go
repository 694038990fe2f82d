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

import "errors"

var (
	// ErrRootRequired is returned when a root directory is not provided.
	ErrRootRequired = errors.New("root directory required")

	// ErrNoExtensions is returned when the recognized extension set is empty.
	ErrNoExtensions = errors.New("at least one extension required")

	// ErrDuplicateSource indicates two files normalized to the same source id.
	ErrDuplicateSource = errors.New("duplicate source id")

	// ErrInvalidEncoding indicates file contents that are not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid text encoding")

	// ErrUnsupportedFormat indicates a recognized extension with no usable extractor.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrEmptyDocument indicates a file whose extracted text is empty.
	ErrEmptyDocument = errors.New("document has no extractable text")
)

// FileError records a recoverable per-file load failure. The surrounding load
// continues; the failure is reported alongside the successfully loaded documents.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return "load " + e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}
