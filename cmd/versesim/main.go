package main

import "versesim/internal/cli"

func main() {
	cli.Execute()
}
