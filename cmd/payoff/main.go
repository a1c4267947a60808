package main

import "github.com/rpgo/payoff-calculator/internal/cli"

func main() {
	cli.Execute()
}
