package script

import (
	"strconv"
	"strings"
	"time"
)

// Mode selects how a script produces output.
type Mode string

const (
	// ModePoll reruns the command at a fixed interval.
	ModePoll Mode = "poll"
	// ModeWatch runs the command once and streams its output line by line.
	ModeWatch Mode = "watch"
)

// DefaultInterval is the poll period used when the expression names none.
const DefaultInterval = 5 * time.Second

// Parse extracts mode, interval, and command from a script expression.
// Parsing never fails: unrecognized prefixes are treated as part of the
// command, missing prefixes fall back to poll mode at DefaultInterval.
func Parse(expr string) (Mode, time.Duration, string) {
	mode := ModePoll
	interval := DefaultInterval
	rest := strings.TrimSpace(expr)

	if head, tail, ok := strings.Cut(rest, ":"); ok {
		switch Mode(head) {
		case ModePoll, ModeWatch:
			mode = Mode(head)
			rest = tail
		}
	}

	if head, tail, ok := strings.Cut(rest, ":"); ok {
		if ms, err := strconv.Atoi(head); err == nil && ms > 0 {
			interval = time.Duration(ms) * time.Millisecond
			rest = tail
		}
	}

	return mode, interval, strings.TrimSpace(rest)
}
