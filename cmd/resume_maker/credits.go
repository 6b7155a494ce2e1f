package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/resumeforge/resume-maker/internal/config"
	"github.com/resumeforge/resume-maker/internal/db"
)

var (
	creditsConfigPath string
	creditsUserID     string
	creditsAmount     int
)

var creditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Manage AI scoring credits",
}

var creditsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a user's credit balance",
	RunE:  runCreditsShow,
}

var creditsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Grant credits to a user",
	RunE:  runCreditsAdd,
}

func init() {
	creditsCmd.PersistentFlags().StringVar(&creditsConfigPath, "config", "", "Path to config.json file")
	creditsCmd.PersistentFlags().StringVar(&creditsUserID, "user", "", "User UUID (required)")
	creditsAddCmd.Flags().IntVar(&creditsAmount, "amount", 0, "Number of credits to add (required)")

	creditsCmd.AddCommand(creditsShowCmd)
	creditsCmd.AddCommand(creditsAddCmd)
	rootCmd.AddCommand(creditsCmd)
}

func creditsDB(ctx context.Context) (*db.DB, uuid.UUID, error) {
	userID, err := uuid.Parse(creditsUserID)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("--user must be a valid UUID: %w", err)
	}

	cfg, err := config.Load(creditsConfigPath)
	if err != nil {
		return nil, uuid.Nil, err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, userID, nil
}

func runCreditsShow(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	database, userID, err := creditsDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	balance, err := database.GetCredits(ctx, userID)
	if err != nil {
		return err
	}
	fmt.Printf("User %s has %d credits\n", userID, balance)
	return nil
}

func runCreditsAdd(cmd *cobra.Command, _ []string) error {
	if creditsAmount < 1 {
		return fmt.Errorf("--amount must be at least 1")
	}

	ctx := context.Background()
	database, userID, err := creditsDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.AddCredits(ctx, userID, creditsAmount); err != nil {
		return err
	}

	balance, err := database.GetCredits(ctx, userID)
	if err != nil {
		return err
	}
	fmt.Printf("Added %d credits; user %s now has %d\n", creditsAmount, userID, balance)
	return nil
}
