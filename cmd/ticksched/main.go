package main

import "ticksched/internal/cli"

func main() {
	cli.Execute()
}
