package main

import "spacearchive/cmd"

func main() {
	cmd.Execute()
}
