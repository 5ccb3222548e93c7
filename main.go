package main

import "github.com/madhavasok/chatai/cmd/chatai/commands"

func main() {
	commands.Execute()
}
