package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/gazette/internal/config"
	"github.com/alfredjeanlab/gazette/internal/model"
	"github.com/alfredjeanlab/gazette/internal/store/postgres"
)

var (
	newsAddTitle string
	newsAddText  string
	newsAddDate  string
)

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Manage news items",
}

var newsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Publish a news item",
	RunE: func(cmd *cobra.Command, args []string) error {
		news := &model.News{
			Title: newsAddTitle,
			Text:  newsAddText,
			Date:  time.Now().UTC(),
		}
		if newsAddDate != "" {
			d, err := time.Parse(time.RFC3339, newsAddDate)
			if err != nil {
				return fmt.Errorf("parse --date: %w", err)
			}
			news.Date = d.UTC()
		}
		if err := model.ValidateNews(news); err != nil {
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

		if err := store.CreateNews(context.Background(), news); err != nil {
			return fmt.Errorf("create news: %w", err)
		}

		fmt.Printf("Published news %d: %s\n", news.ID, news.Title)
		return nil
	},
}

func init() {
	newsAddCmd.Flags().StringVar(&newsAddTitle, "title", "", "news title (required)")
	newsAddCmd.Flags().StringVar(&newsAddText, "text", "", "news body (required)")
	newsAddCmd.Flags().StringVar(&newsAddDate, "date", "", "publication date (RFC 3339, default now)")
	_ = newsAddCmd.MarkFlagRequired("title")
	_ = newsAddCmd.MarkFlagRequired("text")

	newsCmd.AddCommand(newsAddCmd)
}
