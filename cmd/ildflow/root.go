package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ildflow",
	Short: "ildflow guides clinicians through ILD decision pathways",
	Long: `ildflow runs interactive clinical decision pathways for interstitial lung
disease: diagnostic work-up, IPF classification, ILA risk stratification,
screening and treatment rules, with optional AI-generated summaries.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}
