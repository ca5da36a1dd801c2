package main

import "github.com/mcoot/aqua-access/internal/cli"

func main() {
	cli.Execute()
}
