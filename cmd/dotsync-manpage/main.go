// Command dotsync-manpage writes the dotsync(1) man page to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dotsync/cmd/dotsync"
	"github.com/arthur-debert/dotsync/internal/version"
)

func main() {
	rootCmd := dotsync.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "DOTSYNC",
		Section: "1",
		Source:  "dotsync " + version.Version,
		Manual:  "dotsync manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
