// Package main provides the entry point for the resume maker service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_maker",
	Short: "ATS resume maker",
	Long:  "Resume maker stores resumes, parses uploaded files into structured sections, renders them with built-in templates, scores them for ATS friendliness, and exports PDFs via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
