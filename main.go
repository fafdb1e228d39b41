package main

import "github.com/lyind/loopgrab/cmd"

func main() {
	cmd.Execute()
}
