package main

import (
	"github.com/TomTonic/mtwist/internal/cli"
)

func main() {
	cli.New("mtwist").Run()
}
