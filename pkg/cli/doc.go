// Package cli implements the dynlabel command-line interface.
//
// Commands:
//
//	dynlabel render <template>   live-render one template to stdout
//	dynlabel run -f labels.yaml  run every label from a config file
//	dynlabel compile <template>  print the compiled segment list
//	dynlabel version             show version information
//
// The CLI owns expression dispatch: template expressions prefixed with
// "expr:" are evaluated with pkg/exprsource, everything else is executed
// as a shell command via pkg/script.
package cli
