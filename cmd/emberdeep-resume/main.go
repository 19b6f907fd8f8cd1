package main

import "github.com/emberdeep/emberdeep-resume/cmd/emberdeep-resume/commands"

func main() {
	commands.Execute()
}
