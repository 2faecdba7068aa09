package git

import (
	"iter"
	"slices"
)

// Snapshot is a read-only, ordered view of the revisions decoded in one
// generation at the moment it was published.
type Snapshot struct {
	revs       []Revision
	Generation int
	Final      bool
}

// Len returns the number of revisions.
func (s Snapshot) Len() int {
	return len(s.revs)
}

// At returns the i-th revision.
func (s Snapshot) At(i int) Revision {
	return s.revs[i]
}

// Revisions returns a copy of the revisions.
func (s Snapshot) Revisions() []Revision {
	return slices.Clone(s.revs)
}

// All iterates over the revisions in stream order.
func (s Snapshot) All() iter.Seq2[int, Revision] {
	return func(yield func(int, Revision) bool) {
		for i, r := range s.revs {
			if !yield(i, r) {
				return
			}
		}
	}
}

// SnapshotFunc receives every published snapshot.
type SnapshotFunc func(Snapshot)

// Publisher owns the working list of the current generation.
//
// Published snapshots are capacity-clipped views of the working slice; the
// publisher only ever appends past them, so their contents never change.
type Publisher struct {
	working    []Revision
	generation int
	latest     Snapshot
	sink       SnapshotFunc
	sealed     bool
}

// NewPublisher creates a publisher. sink may be nil.
func NewPublisher(sink SnapshotFunc) *Publisher {
	return &Publisher{working: make([]Revision, 0, 1024), sink: sink}
}

// Append adds a revision to the working list.
func (p *Publisher) Append(r Revision) {
	if p.sealed {
		panic("git: append to sealed publisher")
	}
	p.working = append(p.working, r)
}

// Len returns the size of the working list.
func (p *Publisher) Len() int {
	return len(p.working)
}

// Generation returns the current generation number, starting at 0.
func (p *Publisher) Generation() int {
	return p.generation
}

// NewGeneration discards the working list and starts an empty one.
func (p *Publisher) NewGeneration() {
	p.working = make([]Revision, 0, 1024)
	p.generation++
}

// Publish hands the current working list to the sink. With trim the list
// is compacted into a final snapshot and the publisher is sealed.
func (p *Publisher) Publish(trim bool) Snapshot {
	var snap Snapshot
	if trim {
		snap = Snapshot{revs: slices.Clone(p.working), Generation: p.generation, Final: true}
		if snap.revs == nil {
			snap.revs = []Revision{}
		}
		p.working = nil
		p.sealed = true
	} else {
		n := len(p.working)
		snap = Snapshot{revs: p.working[:n:n], Generation: p.generation}
	}
	p.latest = snap
	if p.sink != nil {
		p.sink(snap)
	}
	return snap
}

// Latest returns the most recently published snapshot.
func (p *Publisher) Latest() Snapshot {
	return p.latest
}

// Sealed reports whether the final snapshot has been published.
func (p *Publisher) Sealed() bool {
	return p.sealed
}
