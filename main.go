package main

import "github.com/taskdeck/tdl/cmd"

func main() {
	cmd.Execute()
}
