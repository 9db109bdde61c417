// dynlabel CLI - live template-composed label strings
package main

import "github.com/getdynlabel/dynlabel/pkg/cli"

func main() {
	cli.Execute()
}
