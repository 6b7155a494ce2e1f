package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/resumeforge/resume-maker/internal/config"
	"github.com/resumeforge/resume-maker/internal/server"
)

var (
	tokenConfigPath string
	tokenUserID     string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for a user",
	Long:  `Generate a signed JWT for the given user ID, using the configured secret. Useful for local testing and for trusted frontends that manage their own accounts.`,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenConfigPath, "config", "", "Path to config.json file")
	tokenCmd.Flags().StringVar(&tokenUserID, "user", "", "User UUID (required)")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	userID, err := uuid.Parse(tokenUserID)
	if err != nil {
		return fmt.Errorf("--user must be a valid UUID: %w", err)
	}

	cfg, err := config.Load(tokenConfigPath)
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(cfg.JWTSecret, cfg.JWTExpirationHours).GenerateToken(userID)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
