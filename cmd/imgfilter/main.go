package main

import (
	"os"

	"github.com/ds124wfegd/imgfilter/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], os.Stdout, os.Stderr))
}
