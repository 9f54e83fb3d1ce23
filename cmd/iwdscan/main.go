package main

import (
	"github.com/dogeorg/iwdscan/cmd/iwdscan/cmd"
)

func main() {
	cmd.Execute()
}
