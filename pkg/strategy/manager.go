package strategy

import (
	"iter"

	"github.com/matzehuels/trackgraph/pkg/geometry"
	"github.com/matzehuels/trackgraph/pkg/render/canvas"
	"github.com/matzehuels/trackgraph/pkg/segment"
)

// Entry records where an element was routed.
type Entry[P any, E Element, S Host] struct {
	Placement P
	Element   E
	Segment   S
	demand    segment.DemandID
}

// Manager routes elements of type E, placed by P, into segments S keyed by K.
type Manager[P any, E Element, K comparable, S Host] struct {
	registry *segment.Registry[K, S]
	convert  func(P) (K, error)
	entries  []*Entry[P, E, S]
}

// NewManager creates a manager over reg using convert to key placements.
func NewManager[P any, E Element, K comparable, S Host](reg *segment.Registry[K, S], convert func(P) (K, error)) *Manager[P, E, K, S] {
	return &Manager[P, E, K, S]{registry: reg, convert: convert}
}

// Registry returns the segment registry the manager resolves keys in.
func (m *Manager[P, E, K, S]) Registry() *segment.Registry[K, S] { return m.registry }

// Add routes e to the segment for p and registers its height demand there.
func (m *Manager[P, E, K, S]) Add(p P, e E) error {
	key, err := m.convert(p)
	if err != nil {
		return err
	}
	seg, err := m.registry.Resolve(key)
	if err != nil {
		return err
	}
	id := seg.AddHeightDemand(func() float64 { return e.DesiredSize().H })
	m.entries = append(m.entries, &Entry[P, E, S]{Placement: p, Element: e, Segment: seg, demand: id})
	return nil
}

// Clear removes every element and its demand. Segments stay registered.
func (m *Manager[P, E, K, S]) Clear() {
	for _, en := range m.entries {
		en.Segment.RemoveHeightDemand(en.demand)
	}
	m.entries = nil
}

// Len returns the number of elements.
func (m *Manager[P, E, K, S]) Len() int { return len(m.entries) }

// Entries iterates over the elements in insertion order.
func (m *Manager[P, E, K, S]) Entries() iter.Seq[*Entry[P, E, S]] {
	return func(yield func(*Entry[P, E, S]) bool) {
		for _, en := range m.entries {
			if !yield(en) {
				return
			}
		}
	}
}

// Elements iterates over the elements in insertion order.
func (m *Manager[P, E, K, S]) Elements() iter.Seq[E] {
	return func(yield func(E) bool) {
		for _, en := range m.entries {
			if !yield(en.Element) {
				return
			}
		}
	}
}

// Measure measures every element and returns the largest desired size.
func (m *Manager[P, E, K, S]) Measure() geometry.Size {
	var out geometry.Size
	for _, en := range m.entries {
		sz := en.Element.Measure()
		out.W = max(out.W, sz.W)
		out.H = max(out.H, sz.H)
	}
	return out
}

// Draw draws every element.
func (m *Manager[P, E, K, S]) Draw(c canvas.Canvas) {
	for _, en := range m.entries {
		en.Element.Draw(c)
	}
}
