package main

import "github.com/unicloudio/unicloud/cmd"

// We structure the unicloud command line tool as a single executable with
// subcommands, as is common for many cloud utilities.
func main() {
	cmd.Execute()
}
