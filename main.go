package main

import "erc20indexer/cmd"

func main() {
	cmd.Execute()
}
