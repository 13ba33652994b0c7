package segment

// Stack arranges an ordered list of measurable segments top to bottom.
//
// When the aggregate desired height exceeds the available height, every
// segment is shrunk by the same factor. Otherwise segments keep their
// desired height and the remaining space is left below the last one.
type Stack struct {
	segments []*Measurable
	desired  float64
	scale    float64
}

// NewStack creates a stack over segs, topmost first.
func NewStack(segs ...*Measurable) *Stack {
	return &Stack{segments: segs, scale: 1}
}

// Append adds segments to the bottom of the stack.
func (s *Stack) Append(segs ...*Measurable) {
	s.segments = append(s.segments, segs...)
}

// Segments returns the stacked segments, topmost first.
func (s *Stack) Segments() []*Measurable { return s.segments }

// Measure runs the Measure pass over every segment and returns the
// aggregate desired height.
func (s *Stack) Measure() float64 {
	var sum float64
	for _, m := range s.segments {
		sum += m.MeasureHeight()
	}
	s.desired = sum
	return sum
}

// DesiredHeight returns the aggregate computed by the last Measure call.
func (s *Stack) DesiredHeight() float64 { return s.desired }

// Arrange runs the Arrange pass: it computes the scale factor for the
// available height and fixes the bounds of every segment starting at top.
// It returns the scale factor, which is 1 unless the stack is height
// constrained.
func (s *Stack) Arrange(top, available float64) float64 {
	s.scale = 1
	if s.desired > available && s.desired > 0 {
		s.scale = max(available, 0) / s.desired
	}

	y := top
	for _, m := range s.segments {
		h := m.DesiredHeight() * s.scale
		m.SetBounds(s, y, y+h)
		y += h
	}
	return s.scale
}

// Scale returns the factor applied by the last Arrange call.
func (s *Stack) Scale() float64 { return s.scale }
