// Package template compiles label templates into ordered segment lists.
//
// A template is plain text with embedded expressions bracketed by {{ and }}:
//
//	Uptime: {{uptime -p}}
//
// Compile splits the input into an ordered sequence of segments, each either
// a static literal or the raw source of one embedded expression. The package
// does not interpret expression syntax; that is the job of whatever source
// implementation the segments are later bound to (see pkg/dynstring and
// pkg/script).
//
// There is no escaping mechanism. A {{ that is never closed consumes the
// rest of the input as its expression source; deciding whether that text is
// meaningful is an execution-time concern, so Compile never returns an error.
package template
