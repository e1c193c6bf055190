package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alfredjeanlab/gazette/internal/auth"
	"github.com/alfredjeanlab/gazette/internal/config"
	"github.com/alfredjeanlab/gazette/internal/model"
	"github.com/alfredjeanlab/gazette/internal/store/postgres"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		password, err := promptPassword()
		if err != nil {
			return err
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()

		user := &model.User{
			Username:     username,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		}
		if err := store.CreateUser(context.Background(), user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		fmt.Printf("Created user %s (id %d)\n", user.Username, user.ID)
		return nil
	},
}

// promptPassword reads the password twice without echo and checks both
// entries match.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if len(first) == 0 {
		return "", fmt.Errorf("password must not be empty")
	}

	fmt.Fprint(os.Stderr, "Repeat password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}

	return string(first), nil
}

func init() {
	userCmd.AddCommand(userCreateCmd)
}
