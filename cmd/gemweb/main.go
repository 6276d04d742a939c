package main

import "github.com/dmateus/gemweb/internal/commands"

func main() {
	commands.Execute()
}
