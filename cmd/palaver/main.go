// Package main provides the palaver CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/richinex/palaver/cli"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	provider string
	channel  string
	dbPath   string
	verbose  bool
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "palaver",
		Short: "Tool-augmented chat with durable multi-modal history",
		Long: `A conversational front-end for a tool-using agent runtime.

History is persisted in a local SQLite database and replayed on startup.
Uploaded documents are indexed in a remote vector store for file search;
uploaded images become part of the conversation.`,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&provider, "provider", "p", "", "Runtime provider (openai, anthropic, gemini)")
	rootCmd.PersistentFlags().StringVar(&channel, "channel", "", "Conversation channel name")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path for conversation history")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")

	rootCmd.AddCommand(chatCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(resetCmd())
	rootCmd.AddCommand(uploadCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func opts() cli.Options {
	return cli.Options{
		Provider: provider,
		Channel:  channel,
		DBPath:   dbPath,
		Verbose:  verbose,
	}
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session.

Persisted history is replayed first, then each input line runs one agent
turn with live streaming output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Chat(context.Background(), opts())
		},
	}
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print the persisted conversation history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.History(context.Background(), opts())
		},
	}
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all history for the channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Reset(context.Background(), opts())
		},
	}
}

func uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload [file]",
		Short: "Attach a document or image to the session",
		Long: `Attach a file to the session.

Text documents are uploaded and indexed for file search. Images are added
to the conversation history and visible to the agent on the next turn.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Upload(context.Background(), args[0], opts())
		},
	}
}
