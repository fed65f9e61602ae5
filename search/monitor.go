package search

import (
	"github.com/poiesic/gitkb/core"
)

// Monitor provides hooks to observe the ranking process.
// Implement this interface to track intermediate steps and results during ranking.
type Monitor interface {
	Start(query string, tokens []string)
	EntryScored(entry core.KnowledgeEntry, score float64)
	AfterTruncate(kept []core.ScoredEntry)
	Finish(results []core.ScoredEntry)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ []string)                   {}
func (n *noopMonitor) EntryScored(_ core.KnowledgeEntry, _ float64) {}
func (n *noopMonitor) AfterTruncate(_ []core.ScoredEntry)           {}
func (n *noopMonitor) Finish(_ []core.ScoredEntry)                  {}
