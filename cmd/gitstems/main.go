package main

import "github.com/audi70r/gitstems/internal/cli"

func main() {
	cli.Execute()
}
