package main

import (
	"os"

	"github.com/fabrikdata/firmenmatch/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
