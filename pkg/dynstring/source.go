package dynstring

import "context"

// Stream classifies one output event of a Source.
type Stream int

const (
	// StreamPrimary is the source's main output. Primary events drive
	// updates to the composed string.
	StreamPrimary Stream = iota
	// StreamDiagnostic is auxiliary output (a process's stderr, warnings).
	// Diagnostic events never change the composed string.
	StreamDiagnostic
)

// String returns a human-readable name for the stream.
func (s Stream) String() string {
	switch s {
	case StreamPrimary:
		return "primary"
	case StreamDiagnostic:
		return "diagnostic"
	default:
		return "unknown"
	}
}

// Output is one event produced by a Source.
type Output struct {
	Stream Stream
	Data   string
}

// Source is the execution capability behind one dynamic segment. Run blocks
// until the source terminates or ctx is cancelled, calling emit for every
// output event in the meantime. emit must not be called after Run returns.
//
// A Source that returns an error, or returns without ever emitting, simply
// stops updating its segment; the composed string keeps whatever value the
// segment last had.
type Source interface {
	Run(ctx context.Context, emit func(Output)) error
}

// SourceFactory builds the Source for one dynamic segment from its raw
// expression text. It must not fail: expression syntax is the source's own
// concern, and a source that cannot run reports that from Run.
type SourceFactory func(expr string) Source

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(ctx context.Context, emit func(Output)) error

// Run calls f.
func (f SourceFunc) Run(ctx context.Context, emit func(Output)) error {
	return f(ctx, emit)
}
