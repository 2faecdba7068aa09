package bugfix

import (
	"regexp"
	"strings"

	"github.com/masmgr/revwalk-go/internal/git"
)

// BugfixResult holds the result of bugfix detection for a set of revisions.
type BugfixResult struct {
	// BugfixRevisions is the set of revision ids identified as bugfixes.
	BugfixRevisions map[string]struct{}
	// AuthorBugfixCounts maps author names to their number of bugfix revisions.
	AuthorBugfixCounts map[string]int
	// TotalBugfixes is the total number of bugfix revisions detected.
	TotalBugfixes int
}

// IsBugfixRevision reports whether id was classified as a bugfix.
func (r *BugfixResult) IsBugfixRevision(id string) bool {
	_, ok := r.BugfixRevisions[id]
	return ok
}

// Detector detects bugfix revisions by matching subjects against regex patterns.
type Detector struct {
	patterns []*regexp.Regexp
}

// NewDetector creates a new Detector from a list of regex pattern strings.
// Patterns are compiled as case-insensitive. Returns an error if any pattern fails to compile.
func NewDetector(patterns []string) (*Detector, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		// Add case-insensitive flag if not already present
		if !strings.HasPrefix(p, "(?i)") {
			p = "(?i)" + p
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return &Detector{patterns: compiled}, nil
}

// IsBugfix returns true if the given subject matches any of the detector's patterns.
func (d *Detector) IsBugfix(message string) bool {
	for _, re := range d.patterns {
		if re.MatchString(message) {
			return true
		}
	}
	return false
}

// Detect scans the given revisions and returns the bugfix detection result.
// A revision is classified as a bugfix if its subject matches any of the
// configured patterns. Merge revisions are never classified.
func (d *Detector) Detect(revs []git.Revision) *BugfixResult {
	result := &BugfixResult{
		BugfixRevisions:    make(map[string]struct{}),
		AuthorBugfixCounts: make(map[string]int),
	}

	if len(d.patterns) == 0 {
		return result
	}

	for _, r := range revs {
		if r.IsMerge() || !d.IsBugfix(r.Subject) {
			continue
		}

		result.BugfixRevisions[r.ID] = struct{}{}
		result.AuthorBugfixCounts[r.Author]++
		result.TotalBugfixes++
	}

	return result
}
