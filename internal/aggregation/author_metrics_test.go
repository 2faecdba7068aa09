package aggregation

import (
	"math"
	"testing"
	"time"

	"github.com/masmgr/revwalk-go/internal/git"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func rev(id, author string, daysAgo int, parents ...string) git.Revision {
	return git.Revision{
		ID:              id,
		Author:          author,
		Parents:         parents,
		TimestampMillis: base.AddDate(0, 0, -daysAgo).UnixMilli(),
	}
}

func TestAuthorMetrics_AddRevision(t *testing.T) {
	m := NewAuthorMetrics("Alice")
	m.AddRevision(rev("a1", "Alice", 0, "p1", "p2"), false)
	m.AddRevision(rev("a2", "Alice", 10, "p1"), true)

	if m.RevisionCount != 2 {
		t.Errorf("RevisionCount = %d, expected 2", m.RevisionCount)
	}
	if m.MergeCount != 1 {
		t.Errorf("MergeCount = %d, expected 1", m.MergeCount)
	}
	if m.BugfixCount != 1 {
		t.Errorf("BugfixCount = %d, expected 1", m.BugfixCount)
	}
	if !m.FirstAt.Equal(base.AddDate(0, 0, -10)) {
		t.Errorf("FirstAt = %v", m.FirstAt)
	}
	if !m.LastAt.Equal(base) {
		t.Errorf("LastAt = %v", m.LastAt)
	}
	if got := m.BugfixRatio(); got != 0.5 {
		t.Errorf("BugfixRatio() = %f, expected 0.5", got)
	}
}

func TestAuthorMetrics_BugfixRatio_NoRevisions(t *testing.T) {
	if got := NewAuthorMetrics("nobody").BugfixRatio(); got != 0 {
		t.Errorf("BugfixRatio() = %f, expected 0", got)
	}
}

func TestAuthorMetricsAggregator_Process(t *testing.T) {
	revs := []git.Revision{
		rev("c1", "Alice", 0),
		rev("c2", "bob", 1),
		rev("c3", "alice ", 2),
		rev("c4", "Alice", 40),
		rev("c5", "Bob", 3),
		rev("c6", "Carol", 4),
	}
	fixes := map[string]bool{"c2": true, "c4": true}

	agg := NewAuthorMetricsAggregator(7)
	summary := agg.Process(revs, func(id string) bool { return fixes[id] })

	if len(summary.Authors) != 3 {
		t.Fatalf("expected 3 authors, got %d", len(summary.Authors))
	}

	alice := summary.Authors[0]
	if alice.Name != "Alice" || alice.RevisionCount != 3 {
		t.Errorf("top author = %s with %d revisions, expected Alice with 3", alice.Name, alice.RevisionCount)
	}
	if alice.BugfixCount != 1 {
		t.Errorf("Alice BugfixCount = %d, expected 1", alice.BugfixCount)
	}
	// Two of three revisions fall in one week.
	if math.Abs(alice.BurstScore-2.0/3.0) > 1e-9 {
		t.Errorf("Alice BurstScore = %f, expected 0.667", alice.BurstScore)
	}

	if summary.Authors[1].Name != "bob" || summary.Authors[2].Name != "Carol" {
		t.Errorf("ranking = %s, %s; expected bob, Carol", summary.Authors[1].Name, summary.Authors[2].Name)
	}
	if math.Abs(summary.OwnershipRatio-0.5) > 1e-9 {
		t.Errorf("OwnershipRatio = %f, expected 0.5", summary.OwnershipRatio)
	}
	if summary.Entropy <= 0 || summary.Entropy >= 1 {
		t.Errorf("Entropy = %f, expected strictly between 0 and 1", summary.Entropy)
	}
	if len(agg.GetMetrics()) != 3 {
		t.Errorf("GetMetrics() has %d entries, expected 3", len(agg.GetMetrics()))
	}
}

func TestAuthorMetricsAggregator_Empty(t *testing.T) {
	summary := NewAuthorMetricsAggregator(7).Process(nil, nil)
	if len(summary.Authors) != 0 {
		t.Errorf("expected no authors, got %d", len(summary.Authors))
	}
	if summary.OwnershipRatio != 0 || summary.Entropy != 0 {
		t.Errorf("OwnershipRatio = %f, Entropy = %f, expected zeros", summary.OwnershipRatio, summary.Entropy)
	}
}

func TestAuthorMetricsAggregator_TieBreaksByName(t *testing.T) {
	revs := []git.Revision{rev("1", "Zed", 0), rev("2", "Amy", 1)}
	summary := NewAuthorMetricsAggregator(7).Process(revs, nil)
	if summary.Authors[0].Name != "Amy" {
		t.Errorf("first author = %s, expected Amy", summary.Authors[0].Name)
	}
}
