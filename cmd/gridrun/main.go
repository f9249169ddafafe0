package main

import (
	"github.com/gridrun/gridrun/pkg/cli"
)

func main() {
	cli.Execute()
}
