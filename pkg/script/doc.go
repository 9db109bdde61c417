// Package script runs shell commands as dynamic-segment sources.
//
// A script expression has the form
//
//	[mode:][interval:]command
//
// where mode is "poll" (default) or "watch" and interval is a poll period
// in milliseconds (default 5000). Everything after the recognized prefixes
// is the command, passed verbatim to `sh -c`, so colons inside the command
// itself (URLs, PATH entries) survive parsing:
//
//	uptime -p                 poll every 5s
//	1000:date +%H:%M          poll every second
//	watch:journalctl -f       one long-lived process, one event per line
//	poll:200:cat /proc/loadavg
//
// In poll mode each run's trimmed stdout becomes one primary event and any
// stderr becomes a diagnostic event; failed runs are logged and polling
// continues. In watch mode the process is started once and every stdout
// line becomes a primary event as it is written; Run returns when the
// process exits.
package script
