package main

import (
	"catalog/db"
	"catalog/models"
	"catalog/processing"
	"catalog/storage"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "catalog",
		Short:         "Photo catalog server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd)
			defer stop()
			return runServer(ctx)
		},
	}
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newReindexCommand())
	return rootCmd
}

// signalContext is cancelled on SIGINT / SIGTERM
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and the background indexer (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext(cmd)
			defer stop()
			return runServer(ctx)
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db.Init()
			if err := models.Init(); err != nil {
				return err
			}
			log.Print("Schema is up to date")
			return nil
		},
	}
}

func newReindexCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Send every image to the embedding service again",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext(cmd)
			defer stop()
			db.Init()
			if err := models.Init(); err != nil {
				return err
			}
			if err := storage.Init(); err != nil {
				return err
			}
			done, failed, err := processing.Reindex(ctx)
			if err != nil {
				return err
			}
			log.Printf("Reindex finished, indexed: %d, failed: %d", done, failed)
			return ctx.Err()
		},
	}
}
