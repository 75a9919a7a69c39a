package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pulmotools/ildflow"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the ildflow version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ildflow version %s\n", ildflow.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
