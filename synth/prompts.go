package synth

import (
	"fmt"
	"strings"

	"github.com/quester-io/docquery/core"
)

// AbstentionPhrase is the exact reply the model is instructed to give when
// the context does not contain the answer. Detecting it in a response marks
// the answer as abstained.
const AbstentionPhrase = "I don't have that information."

const answerPromptTemplate = `Answer the question using ONLY the context below. Each context passage is labeled with its source.

Rules:
- Use only information found in the context. Do not use prior knowledge.
- If the context does not contain the answer, reply exactly: %s
- When your answer draws on a passage, cite it as [Source: <name>].

Context:
%s

Question: %s

Answer:`

// buildPrompt assembles the grounding prompt: instruction header, the
// retrieved passages tagged with their sources, then the question. Context
// size is bounded by retrieval: only the top chunks ever reach the prompt.
func buildPrompt(question string, retrieved []core.RetrievedChunk) string {
	parts := make([]string, len(retrieved))
	for i, rc := range retrieved {
		parts[i] = fmt.Sprintf("[Source: %s]\n%s", rc.Key.SourceID, rc.Text)
	}
	return fmt.Sprintf(answerPromptTemplate, AbstentionPhrase, strings.Join(parts, "\n\n"), question)
}
