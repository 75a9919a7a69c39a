package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulmotools/ildflow/pkg/aiclient"
	"github.com/pulmotools/ildflow/pkg/resolver"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate an AI summary through a running ildflow server",
}

var summaryScreeningCmd = &cobra.Command{
	Use:   "screening <answers.json>",
	Short: "Stream a screening summary for an answers file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var in resolver.ScreeningInput
		if err := json.Unmarshal(data, &in); err != nil {
			return fmt.Errorf("parsing answers: %w", err)
		}

		result := resolver.ScoreScreening(in)
		fmt.Printf("Risk level: %s (score %d)\n\n", result.Level, result.Score)

		return streamSummary(cmd, aiclient.BuildScreeningPrompt(in, result.Level))
	},
}

var summaryTreatmentCmd = &cobra.Command{
	Use:   "treatment",
	Short: "Stream a therapeutic summary for a SARD and clinical context",
	RunE: func(cmd *cobra.Command, args []string) error {
		sard, _ := cmd.Flags().GetString("sard")
		tc, _ := cmd.Flags().GetString("context")

		rec := resolver.LookupTreatment(sard, resolver.TreatmentContext(tc))
		fmt.Printf("%s\n\n", rec.Title)

		return streamSummary(cmd, aiclient.BuildTreatmentPrompt(sard, resolver.TreatmentContext(tc)))
	},
}

func streamSummary(cmd *cobra.Command, req aiclient.Request) error {
	server, _ := cmd.Flags().GetString("server")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	client := aiclient.New(server,
		aiclient.WithLogger(newLogger(cmd, false)),
		aiclient.WithTimeout(timeout),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err := client.StreamText(ctx, req, func(chunk string) {
		fmt.Print(chunk)
	})
	fmt.Println()
	if err != nil && aiclient.IsCancellation(err) {
		return nil
	}
	return err
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.AddCommand(summaryScreeningCmd)
	summaryCmd.AddCommand(summaryTreatmentCmd)

	summaryCmd.PersistentFlags().String("server", "http://localhost:8080", "ildflow server base URL")
	summaryCmd.PersistentFlags().Duration("timeout", 60*time.Second, "Request timeout")

	summaryTreatmentCmd.Flags().String("sard", "SSc", "SARD token (SSc, MII, RA, Sjogren, MCTD, Autre)")
	summaryTreatmentCmd.Flags().String("context", "firstLine", "Clinical context (firstLine, progression, rp-ild)")
}
