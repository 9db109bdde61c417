package template

// SegmentKind distinguishes literal text from embedded expressions.
type SegmentKind int

const (
	// SegmentStatic is a literal substring of the template.
	SegmentStatic SegmentKind = iota
	// SegmentDynamic is the raw source of one embedded expression.
	SegmentDynamic
)

// String returns a human-readable name for the kind.
func (k SegmentKind) String() string {
	switch k {
	case SegmentStatic:
		return "static"
	case SegmentDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// Segment is one unit of a compiled template, in original left-to-right
// order. For static segments Text is the literal; for dynamic segments it is
// the expression source with the surrounding delimiters stripped.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Static reports whether the segment is a literal.
func (s Segment) Static() bool { return s.Kind == SegmentStatic }

// Dynamic reports whether the segment is an embedded expression.
func (s Segment) Dynamic() bool { return s.Kind == SegmentDynamic }
