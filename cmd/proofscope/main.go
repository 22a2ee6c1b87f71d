package main

import "github.com/proofscope/proofscope/internal/cli"

func main() {
	cli.Execute()
}
