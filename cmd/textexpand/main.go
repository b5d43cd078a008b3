package main

import (
	"log"

	"github.com/riverfjs/textexpand/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
