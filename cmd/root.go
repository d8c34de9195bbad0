package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Creator content catalog service",
	Long: `Catalog stores artist profiles and the creative works they submit,
and serves them over an HTTP API.`,
	SilenceUsage: true,
}
