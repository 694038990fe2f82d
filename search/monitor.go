package search

import "github.com/quester-io/docquery/core"

// QueryMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps during a query.
type QueryMonitor interface {
	Start(query string)
	AfterQueryEmbedding(dimension int)
	AfterRetrieval(results []core.RetrievedChunk)
	VerbatimMatch(chunk core.Chunk)
	Finish(results []core.RetrievedChunk)
}

// noopMonitor is a no-op implementation of QueryMonitor
type noopMonitor struct{}

var _ QueryMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                         {}
func (n *noopMonitor) AfterQueryEmbedding(_ int)              {}
func (n *noopMonitor) AfterRetrieval(_ []core.RetrievedChunk) {}
func (n *noopMonitor) VerbatimMatch(_ core.Chunk)             {}
func (n *noopMonitor) Finish(_ []core.RetrievedChunk)         {}

// NoopMonitor returns a monitor that observes nothing.
func NoopMonitor() QueryMonitor {
	return &noopMonitor{}
}
