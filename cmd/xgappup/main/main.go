package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/xgappup/cmd/xgappup"
	"github.com/arthur-debert/xgappup/pkg/style"
)

func main() {
	rootCmd := xgappup.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
