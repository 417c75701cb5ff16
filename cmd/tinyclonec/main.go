package main

import "github.com/crguezl/tinyclonec/internal/cli"

func main() {
	cli.Execute()
}
