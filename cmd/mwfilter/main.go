package main

import "mwfilter/internal/cli"

func main() {
	cli.Execute()
}
