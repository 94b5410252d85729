package main

import (
	"github.com/govscope/govscope/cmd"
)

func main() {
	cmd.Execute()
}
