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


package synth

import (
	"errors"
	"fmt"
)

var (
	// ErrGeneratorRequired is returned when a synthesizer is created without a generator.
	ErrGeneratorRequired = errors.New("generator is required")

	// ErrEmptyQuestion is returned for a blank question.
	ErrEmptyQuestion = errors.New("question cannot be empty")
)

// SynthesisError reports a failed generation. The question is carried so
// callers can log or surface it; an answer is never fabricated in its place.
type SynthesisError struct {
	Query string
	Err   error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesizing answer for %q: %v", e.Query, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}
