package main

import "github.com/mydehq/mediascout/internal/cli"

func main() {
	cli.Execute()
}
