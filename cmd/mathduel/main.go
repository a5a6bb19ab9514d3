package main

import "github.com/mathduel/mathduel/internal/cli"

func main() {
	cli.Execute()
}
