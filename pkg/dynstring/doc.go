// Package dynstring keeps a template-composed string up to date as its
// embedded expressions produce new output.
//
// A DynamicString compiles its input with pkg/template, binds every dynamic
// segment to a Source produced by a caller-supplied factory, and republishes
// the full concatenation to a sink callback on every primary-output event.
// Static text is always visible at its original position; each dynamic
// position shows the most recent value its source has emitted, or the empty
// string until the first event arrives.
//
//	ds := dynstring.New(ctx, "Uptime: {{uptime -p}}", script.Factory(logger),
//	    func(s string) bool {
//	        label.SetText(s)
//	        return true
//	    })
//	defer ds.Stop()
//
// The sink is always invoked from a single goroutine, one call at a time,
// and the first call always carries the initial snapshot (all static text,
// dynamic positions empty) before any source update is delivered. Returning
// false from the sink stops the instance.
package dynstring
