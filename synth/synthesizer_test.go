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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quester-io/docquery/ai/mock"
	"github.com/quester-io/docquery/core"
)

func retrieved(source string, ordinal int, text string, score float64) core.RetrievedChunk {
	return core.RetrievedChunk{
		Chunk: core.Chunk{
			Key:  core.ChunkKey{SourceID: source, Ordinal: ordinal},
			Text: text,
		},
		Score: score,
	}
}

func TestNewSynthesizerValidation(t *testing.T) {
	_, err := NewSynthesizer(nil)
	assert.ErrorIs(t, err, ErrGeneratorRequired)
}

func TestSynthesizeGroundedAnswer(t *testing.T) {
	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "Returns are accepted within 30 days [Source: faq.md].", nil
	}

	s, err := NewSynthesizer(generator)
	require.NoError(t, err)

	chunks := []core.RetrievedChunk{
		retrieved("faq.md", 0, "Returns are accepted within 30 days of purchase.", 0.92),
		retrieved("shipping.md", 0, "Shipping takes five business days.", 0.41),
	}

	answer, err := s.Synthesize(context.Background(), "What is the return policy?", chunks)
	require.NoError(t, err)

	assert.False(t, answer.Abstained)
	assert.Contains(t, answer.Text, "30 days")
	assert.Equal(t, []string{"faq.md"}, answer.Sources)
}

func TestSynthesizePromptContents(t *testing.T) {
	generator := mock.NewMockGenerator()
	s, err := NewSynthesizer(generator)
	require.NoError(t, err)

	chunks := []core.RetrievedChunk{
		retrieved("a.md", 2, "Alpha passage.", 0.9),
		retrieved("b.md", 0, "Beta passage.", 0.8),
	}

	_, err = s.Synthesize(context.Background(), "What do the passages say?", chunks)
	require.NoError(t, err)

	prompt := generator.LastPrompt()
	assert.Contains(t, prompt, "[Source: a.md]\nAlpha passage.")
	assert.Contains(t, prompt, "[Source: b.md]\nBeta passage.")
	assert.Contains(t, prompt, "Question: What do the passages say?")
	assert.Contains(t, prompt, AbstentionPhrase)

	// Passages appear in retrieval order.
	assert.Less(t, strings.Index(prompt, "a.md"), strings.Index(prompt, "b.md"))
}

func TestSynthesizeEmptyRetrievalAbstains(t *testing.T) {
	generator := mock.NewMockGenerator()
	s, err := NewSynthesizer(generator)
	require.NoError(t, err)

	answer, err := s.Synthesize(context.Background(), "Anything at all?", nil)
	require.NoError(t, err)

	assert.True(t, answer.Abstained)
	assert.Equal(t, AbstentionPhrase, answer.Text)
	assert.Empty(t, answer.Sources)
	// The generator must never be invoked without context.
	assert.Zero(t, generator.CallCount())
}

func TestSynthesizeModelAbstention(t *testing.T) {
	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "I don't have that information.", nil
	}

	s, err := NewSynthesizer(generator)
	require.NoError(t, err)

	chunks := []core.RetrievedChunk{
		retrieved("faq.md", 0, "Unrelated content.", 0.1),
	}
	answer, err := s.Synthesize(context.Background(), "What color is the sky?", chunks)
	require.NoError(t, err)

	assert.True(t, answer.Abstained)
	assert.Empty(t, answer.Sources)
}

func TestSynthesizeGenerationFailure(t *testing.T) {
	boom := errors.New("model timed out")
	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", boom
	}

	s, err := NewSynthesizer(generator)
	require.NoError(t, err)

	chunks := []core.RetrievedChunk{retrieved("faq.md", 0, "Content.", 0.5)}
	_, err = s.Synthesize(context.Background(), "A question?", chunks)

	var synthErr *SynthesisError
	require.ErrorAs(t, err, &synthErr)
	assert.Equal(t, "A question?", synthErr.Query)
	assert.ErrorIs(t, err, boom)
}

func TestSynthesizeEmptyQuestion(t *testing.T) {
	s, err := NewSynthesizer(mock.NewMockGenerator())
	require.NoError(t, err)

	_, err = s.Synthesize(context.Background(), "  ", nil)
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestExtractCitations(t *testing.T) {
	chunks := []core.RetrievedChunk{
		retrieved("faq.md", 0, "", 0.9),
		retrieved("guide.md", 1, "", 0.8),
		retrieved("faq.md", 2, "", 0.7),
	}

	t.Run("explicit citations in retrieval order, deduplicated", func(t *testing.T) {
		cited := extractCitations("See [Source: guide.md] and [Source: faq.md], also faq.md again.", chunks)
		assert.Equal(t, []string{"faq.md", "guide.md"}, cited)
	})

	t.Run("no explicit citation attaches all retrieved sources", func(t *testing.T) {
		cited := extractCitations("The answer is forty-two.", chunks)
		assert.Equal(t, []string{"faq.md", "guide.md"}, cited)
	})

	t.Run("case-insensitive match", func(t *testing.T) {
		cited := extractCitations("According to FAQ.MD.", chunks[:1])
		assert.Equal(t, []string{"faq.md"}, cited)
	})
}

func TestIsAbstention(t *testing.T) {
	assert.True(t, isAbstention("I don't have that information."))
	assert.True(t, isAbstention("Sorry, I don't have that information"))
	assert.False(t, isAbstention("The information is in faq.md."))
}
