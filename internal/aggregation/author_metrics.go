package aggregation

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/masmgr/revwalk-go/internal/burst"
	"github.com/masmgr/revwalk-go/internal/entropy"
	"github.com/masmgr/revwalk-go/internal/git"
)

// AuthorMetrics holds aggregated activity for a single author.
type AuthorMetrics struct {
	Name           string // as first seen in the walk
	RevisionCount  int
	MergeCount     int
	BugfixCount    int
	FirstAt        time.Time
	LastAt         time.Time
	RevisionMillis []int64
	BurstScore     float64
}

// NewAuthorMetrics creates a new AuthorMetrics instance.
func NewAuthorMetrics(name string) *AuthorMetrics {
	return &AuthorMetrics{Name: name}
}

// BugfixRatio returns the share of the author's revisions that fix bugs.
func (m *AuthorMetrics) BugfixRatio() float64 {
	if m.RevisionCount == 0 {
		return 0
	}
	return float64(m.BugfixCount) / float64(m.RevisionCount)
}

// AddRevision adds one revision to the author's metrics.
func (m *AuthorMetrics) AddRevision(rev git.Revision, bugfix bool) {
	m.RevisionCount++
	if rev.IsMerge() {
		m.MergeCount++
	}
	if bugfix {
		m.BugfixCount++
	}

	when := rev.When()
	if m.FirstAt.IsZero() || when.Before(m.FirstAt) {
		m.FirstAt = when
	}
	if when.After(m.LastAt) {
		m.LastAt = when
	}
	m.RevisionMillis = append(m.RevisionMillis, rev.TimestampMillis)
}

// AuthorSummary is the author breakdown of one walk.
type AuthorSummary struct {
	Authors []*AuthorMetrics // most active first
	// Entropy is the normalized spread of revisions over authors.
	Entropy float64
	// OwnershipRatio is the share of revisions by the most active author.
	OwnershipRatio float64
}

// AuthorMetricsAggregator aggregates revisions by author.
type AuthorMetricsAggregator struct {
	metrics map[string]*AuthorMetrics
	burst   *burst.Calculator
	entropy *entropy.Calculator
}

// NewAuthorMetricsAggregator creates a new aggregator. windowDays sizes the
// burst window.
func NewAuthorMetricsAggregator(windowDays int) *AuthorMetricsAggregator {
	return &AuthorMetricsAggregator{
		metrics: make(map[string]*AuthorMetrics),
		burst:   burst.NewCalculator(windowDays),
		entropy: entropy.NewCalculator(),
	}
}

// Process aggregates revs. isBugfix may be nil.
func (a *AuthorMetricsAggregator) Process(revs []git.Revision, isBugfix func(id string) bool) *AuthorSummary {
	for _, rev := range revs {
		key := authorKey(rev.Author)
		m, ok := a.metrics[key]
		if !ok {
			m = NewAuthorMetrics(strings.TrimSpace(rev.Author))
			a.metrics[key] = m
		}
		m.AddRevision(rev, isBugfix != nil && isBugfix(rev.ID))
	}
	return a.Summary()
}

// Summary ranks the aggregated authors and computes distribution metrics.
func (a *AuthorMetricsAggregator) Summary() *AuthorSummary {
	authors := make([]*AuthorMetrics, 0, len(a.metrics))
	counts := make([]int, 0, len(a.metrics))
	total := 0
	for _, m := range a.metrics {
		m.BurstScore = a.burst.CalculateBurstScore(m.RevisionMillis)
		authors = append(authors, m)
		counts = append(counts, m.RevisionCount)
		total += m.RevisionCount
	}

	slices.SortFunc(authors, func(x, y *AuthorMetrics) int {
		if c := cmp.Compare(y.RevisionCount, x.RevisionCount); c != 0 {
			return c
		}
		return cmp.Compare(x.Name, y.Name)
	})

	summary := &AuthorSummary{
		Authors: authors,
		Entropy: a.entropy.CalculateDistributionEntropy(counts),
	}
	if total > 0 {
		summary.OwnershipRatio = float64(authors[0].RevisionCount) / float64(total)
	}
	return summary
}

// GetMetrics returns the aggregated metrics keyed by normalized author name.
func (a *AuthorMetricsAggregator) GetMetrics() map[string]*AuthorMetrics {
	return a.metrics
}

func authorKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
