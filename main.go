package main

import "github.com/gleaner-dev/gleaner/cmd"

func main() {
	cmd.Execute()
}
