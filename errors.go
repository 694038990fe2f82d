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


package docquery

import "errors"

var (
	// ErrNotBuilt is returned by Ask before any index has been published.
	ErrNotBuilt = errors.New("no index has been built")

	// ErrNoDocuments indicates the root yielded no loadable documents.
	ErrNoDocuments = errors.New("no documents found")

	// ErrRootRequired indicates a configuration without a document root.
	ErrRootRequired = errors.New("document root is required")

	// ErrInvalidTopK indicates a top-k below one.
	ErrInvalidTopK = errors.New("top-k must be at least 1")
)

// ConfigError marks a fault in the engine configuration or corpus that the
// operator must fix; no amount of retrying will clear it.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return "configuration: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
