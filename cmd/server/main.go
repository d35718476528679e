// Package main is the entry point for the craft server and tools
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iniside/velesarc-craft/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "velesarc-craft",
	Short: "Crafting output evaluation server",
	Long: `velesarc-craft evaluates crafted item outputs from authored recipe data.
It serves crafting stations over gRPC and offers offline evaluation,
simulation and data validation tools.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
