package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/aretw0/tickertape/pkg/ports"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show the most recent invocations recorded in Redis",
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp(cmd)
		defer app.Close()

		if app.Journal == nil {
			fmt.Fprintln(os.Stderr, "Invocation journal is not configured (journal.redis_addr)")
			app.Close()
			os.Exit(1)
		}

		limit, _ := cmd.Flags().GetInt64("limit")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		entries, err := app.Journal.Recent(ctx, limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading journal: %v\n", err)
			app.Close()
			os.Exit(1)
		}
		printJournal(cmd.OutOrStdout(), entries)
	},
}

func printJournal(w io.Writer, entries []ports.JournalEntry) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AT\tTOOL\tOUTCOME\tDURATION\tMESSAGE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.At.Format(time.RFC3339), e.Tool, e.Outcome, e.Duration, e.Message)
	}
	tw.Flush()
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.Flags().Int64("limit", 20, "Number of entries to show")
}
