package main

import "ssbprep/internal/cli"

var version = "dev"

func main() {
	cli.Execute(version)
}
