package main

import "github.com/minerguide/pilotd/cmd/pilotd/cmd"

func main() {
	cmd.Execute()
}
