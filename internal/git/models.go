package git

import (
	"strings"
	"time"
)

const (
	// IDLength is the length of a hex-encoded object name.
	IDLength = 40

	// NoLimit requests every revision the selector reaches.
	NoLimit = -1

	// LegacyTimestampOffset is added to every decoded timestamp.
	//
	// FLAGGED: this compensates for a clock discrepancy observed in an
	// earlier deployment and has no known semantic basis. It is kept so
	// existing consumers see identical values; disable it with
	// RevListOptions.DisableTimestampOffset once the owners confirm it can go.
	LegacyTimestampOffset = 5 * time.Minute
)

// Revision is one decoded commit from the revision walk.
type Revision struct {
	ID              string
	Parents         []string // first parent first
	Author          string
	Subject         string
	Body            string
	Encoding        string // as reported by %e, empty for the default
	TimestampMillis int64
	Sign            Sign // SignNone unless the walk ran in left/right mode
}

// When returns the revision timestamp as a time.Time.
func (r Revision) When() time.Time {
	return time.UnixMilli(r.TimestampMillis)
}

// IsMerge reports whether the revision has more than one parent.
func (r Revision) IsMerge() bool {
	return len(r.Parents) > 1
}

// IsRoot reports whether the revision has no parents.
func (r Revision) IsRoot() bool {
	return len(r.Parents) == 0
}

// ShortID returns the abbreviated object name.
func (r Revision) ShortID() string {
	if len(r.ID) < 7 {
		return r.ID
	}
	return r.ID[:7]
}

// Sign is the %m marker git prints in left/right mode.
type Sign byte

const (
	SignNone          Sign = 0
	SignLeft          Sign = '<'
	SignRight         Sign = '>'
	SignBoundary      Sign = '-'
	SignUninteresting Sign = '^'
)

// Valid reports whether s is one of the markers git can emit.
func (s Sign) Valid() bool {
	switch s {
	case SignLeft, SignRight, SignBoundary, SignUninteresting:
		return true
	default:
		return false
	}
}

// String returns the marker as text, or "" for SignNone.
func (s Sign) String() string {
	if s == SignNone {
		return ""
	}
	return string(rune(s))
}

// RevSpecifier selects the revisions to walk.
type RevSpecifier struct {
	WorkingDirectory string   // overrides the repository work tree when set
	Parameters       []string // passed to git log verbatim
	LeftRight        bool     // request a %m sign per revision
}

// HasLeftRight reports whether the walk should decode sign markers.
// A nil specifier walks HEAD without them.
func (s *RevSpecifier) HasLeftRight() bool {
	return s != nil && s.LeftRight
}

// ParseRevSpecifier builds a specifier from command-line style arguments.
// Left/right mode is enabled for an explicit --left-right flag or a
// symmetric difference such as "main...topic".
func ParseRevSpecifier(args []string) *RevSpecifier {
	spec := &RevSpecifier{}
	for _, a := range args {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if a == "--left-right" {
			spec.LeftRight = true
			continue
		}
		if !strings.HasPrefix(a, "-") && strings.Contains(a, "...") {
			spec.LeftRight = true
		}
		spec.Parameters = append(spec.Parameters, a)
	}
	return spec
}
