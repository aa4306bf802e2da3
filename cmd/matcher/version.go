package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the matcher version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Printf("matcher %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
