// Package search retrieves the chunks most relevant to a question from a
// published index snapshot. Retrieval is purely semantic: the query is
// embedded and ranked against the index by cosine similarity. A QueryMonitor
// can observe each stage without affecting the result.
package search
