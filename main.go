package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/zerocode/landing/internal/cli"
)

//go:embed static
var staticFS embed.FS

func main() {
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: access static files: %v\n", err)
		os.Exit(1)
	}

	if err := cli.Execute(staticSub); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
