package main

import (
	"context"
	"log"

	"github.com/nsqlite/nsduck/internal/nsduck"
)

func main() {
	if err := nsduck.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
