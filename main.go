package main

import "github.com/thunderalley/league-manager-go/cmd"

func main() {
	cmd.Execute()
}
