package main

import "github.com/jgunter/gaia-stats/internal/cli"

func main() {
	cli.Execute()
}
