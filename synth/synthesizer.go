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
	"context"
	"log/slog"
	"strings"

	"github.com/quester-io/docquery/ai"
	"github.com/quester-io/docquery/core"
)

// Synthesizer turns retrieved chunks into a grounded, cited answer.
type Synthesizer struct {
	generator ai.Generator
	logger    *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSynthesizer creates a Synthesizer over a generator port.
func NewSynthesizer(generator ai.Generator, opts ...Option) (*Synthesizer, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	s := &Synthesizer{
		generator: generator,
		logger:    slog.Default().With("component", "synth"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Synthesize generates an answer to the question from the retrieved chunks.
//
// Empty retrieval short-circuits to an abstention without invoking the
// generator: with no context there is nothing to ground an answer in. A
// generation failure, including timeout, returns a *SynthesisError; a
// fabricated answer is never substituted.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, retrieved []core.RetrievedChunk) (*core.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	if len(retrieved) == 0 {
		s.logger.Debug("empty retrieval, abstaining", "question", question)
		return &core.Answer{
			Text:      AbstentionPhrase,
			Abstained: true,
		}, nil
	}

	prompt := buildPrompt(question, retrieved)

	response, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, &SynthesisError{Query: question, Err: err}
	}

	if isAbstention(response) {
		s.logger.Debug("model abstained", "question", question)
		return &core.Answer{
			Text:      response,
			Abstained: true,
		}, nil
	}

	answer := &core.Answer{
		Text:    response,
		Sources: extractCitations(response, retrieved),
	}

	s.logger.Debug("answer synthesized",
		"question", question,
		"sources", len(answer.Sources))

	return answer, nil
}
