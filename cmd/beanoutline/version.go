package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set via -ldflags "-X main.version=..." at build time.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("beanoutline %s\n", version)
	},
}
