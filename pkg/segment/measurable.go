package segment

import (
	"fmt"

	"github.com/matzehuels/trackgraph/pkg/errors"
)

// DemandFunc reports how much height its owner needs.
type DemandFunc func() float64

// DemandID identifies a registered demand so it can be removed again.
type DemandID uint64

// Measurable is a segment that aggregates height demands and receives its
// final bounds during an Arrange pass.
type Measurable struct {
	name string

	upper, lower float64
	arranged     bool
	owner        any

	demands map[DemandID]DemandFunc
	nextID  DemandID
	desired float64
}

// NewMeasurable creates an empty segment. The name is used in diagnostics.
func NewMeasurable(name string) *Measurable {
	return &Measurable{
		name:    name,
		demands: make(map[DemandID]DemandFunc),
	}
}

// Name returns the diagnostic name given to NewMeasurable.
func (m *Measurable) Name() string { return m.name }

// AddHeightDemand registers a contributor and returns its handle.
func (m *Measurable) AddHeightDemand(fn DemandFunc) DemandID {
	m.nextID++
	m.demands[m.nextID] = fn
	return m.nextID
}

// RemoveHeightDemand unregisters a contributor. Unknown handles are ignored.
func (m *Measurable) RemoveHeightDemand(id DemandID) {
	delete(m.demands, id)
}

// DemandCount returns the number of registered contributors.
func (m *Measurable) DemandCount() int { return len(m.demands) }

// MeasureHeight recomputes the desired height as the maximum over all
// contributors, clamped at zero, and returns it.
func (m *Measurable) MeasureHeight() float64 {
	desired := 0.0
	for _, fn := range m.demands {
		desired = max(desired, fn())
	}
	m.desired = desired
	return desired
}

// DesiredHeight returns the value cached by the last MeasureHeight call.
func (m *Measurable) DesiredHeight() float64 { return m.desired }

// SetBounds fixes the final bounds of the segment. owner identifies the
// container running the Arrange pass; it must be comparable. A segment that
// was arranged by one container must not be arranged by another, and doing
// so panics with a CONTRACT_VIOLATION error.
//
// An inverted range is clamped so that the height is zero.
func (m *Measurable) SetBounds(owner any, upper, lower float64) {
	if m.owner != nil && owner != m.owner {
		panic(errors.New(errors.ErrCodeContractViolation,
			"segment %q arranged by %T after being arranged by %T", m.name, owner, m.owner))
	}
	m.owner = owner
	m.upper = upper
	m.lower = max(lower, upper)
	m.arranged = true
}

// Arranged reports whether SetBounds has been called.
func (m *Measurable) Arranged() bool { return m.arranged }

// UpperBound implements Segment.
func (m *Measurable) UpperBound() float64 { return m.upper }

// LowerBound implements Segment.
func (m *Measurable) LowerBound() float64 { return m.lower }

// Height implements Segment.
func (m *Measurable) Height() float64 { return m.lower - m.upper }

func (m *Measurable) String() string {
	return fmt.Sprintf("%s[%.2f..%.2f desired=%.2f]", m.name, m.upper, m.lower, m.desired)
}

var _ Segment = (*Measurable)(nil)
