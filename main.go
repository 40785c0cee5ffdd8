package main

import "github.com/liftedinit/minichain/cmd/minichain"

func main() {
	minichain.Execute()
}
