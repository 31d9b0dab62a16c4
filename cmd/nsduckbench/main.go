package main

import (
	"context"
	"log"

	"github.com/nsqlite/nsduck/internal/nsduckbench"
)

func main() {
	if err := nsduckbench.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
