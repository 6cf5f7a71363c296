package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/xgappup/cmd/xgappup"
	"github.com/arthur-debert/xgappup/internal/version"
)

func main() {
	rootCmd := xgappup.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "XGAPPUP",
		Section: "1",
		Source:  "xgappup " + version.Version,
		Manual:  "xgappup manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
