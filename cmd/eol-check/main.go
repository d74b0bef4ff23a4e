package main

import "eol-check/internal/cli"

func main() {
	cli.Execute()
}
