// Package exprsource evaluates expr-lang expressions as dynamic-segment
// sources, for label content that needs no external process.
//
// An expression is compiled once and then re-evaluated on a fixed interval;
// each result is formatted and emitted as one primary event:
//
//	expr: now().Format("15:04:05")
//	expr: hostname() + " / " + env("USER")
//
// The evaluation environment exposes now(), env(name), and hostname().
// A compile or runtime error ends the source: the segment simply stops
// updating, matching the failure semantics of pkg/dynstring.
package exprsource
