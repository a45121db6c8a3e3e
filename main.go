package main

import "aspect/cmd"

func main() {
	cmd.Execute()
}
