package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mbernath/releasedir/internal/cli"
	"github.com/mbernath/releasedir/pkg/style"
)

//go:embed topics
var topicsDir embed.FS

func main() {
	// The embedded tree is rooted at topics/; serve it from its root so
	// topic names stay bare.
	topicsFS, _ := fs.Sub(topicsDir, "topics")

	rootCmd := cli.NewRootCmd(topicsFS)
	if err := rootCmd.Execute(); err != nil {
		// Errors the display layer already rendered only need the exit
		// code.
		if !errors.Is(err, cli.ErrReported) {
			errorStyle := style.Get("Error")
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		}
		os.Exit(1)
	}
}
