package main

import "github.com/maxBezel/formulabot/cmd"

func main() {
	cmd.Execute()
}
