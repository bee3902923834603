// bitectl is the command-line admin client for the bite backend.
package main

import "github.com/bite-admin/bite/pkg/cli"

func main() {
	cli.Execute()
}
