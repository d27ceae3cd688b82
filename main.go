package main

import "github.com/matieusz/onlyyes/internal/cli"

func main() {
	cli.Execute()
}
