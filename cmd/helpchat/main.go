package main

import "github.com/diogo/helpchat/internal/commands"

func main() {
	commands.Execute()
}
