// Package config loads label definitions for the dynlabel CLI.
//
// A label file is YAML:
//
//	log:
//	  level: info
//	  format: text
//	labels:
//	  - name: uptime
//	    template: "Uptime: {{uptime -p}}"
//	  - name: clock
//	    template: "{{expr:now().Format(\"15:04:05\")}}"
//
// Load reads and validates a file; every label needs a unique, non-empty
// name and a non-empty template. Templates themselves are not validated
// here — a template with no expressions is a legal static label, and
// expression syntax errors only surface when the label runs.
package config
