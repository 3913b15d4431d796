package main

import (
	"github.com/objectledger-lab/objectledger/command/root"
)

func main() {
	root.NewRootCommand().Execute()
}
