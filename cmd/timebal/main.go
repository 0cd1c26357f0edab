package main

import "github.com/leap/balance-engine/cli"

func main() {
	cli.Execute()
}
