package synth

import (
	"strings"

	"github.com/quester-io/docquery/core"
)

// extractCitations scans a response for the source ids of the retrieved
// chunks. Matches are returned in retrieval order, deduplicated. A response
// that names no source explicitly is still grounded in everything that was
// retrieved, so all retrieved sources are attached in that case.
func extractCitations(response string, retrieved []core.RetrievedChunk) []string {
	lower := strings.ToLower(response)

	var cited []string
	seen := make(map[string]bool, len(retrieved))
	for _, rc := range retrieved {
		id := rc.Key.SourceID
		if seen[id] {
			continue
		}
		if strings.Contains(lower, strings.ToLower(id)) {
			seen[id] = true
			cited = append(cited, id)
		}
	}
	if len(cited) > 0 {
		return cited
	}

	for _, rc := range retrieved {
		id := rc.Key.SourceID
		if seen[id] {
			continue
		}
		seen[id] = true
		cited = append(cited, id)
	}
	return cited
}

// isAbstention reports whether a response is the instructed refusal.
func isAbstention(response string) bool {
	return strings.Contains(
		strings.ToLower(response),
		strings.ToLower(strings.TrimSuffix(AbstentionPhrase, ".")),
	)
}
