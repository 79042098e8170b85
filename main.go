package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gigurra/expense-tracker/internal"
	_ "github.com/gigurra/expense-tracker/internal/sqlitestore"
)

func main() {
	if err := internal.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	root := &cobra.Command{
		Use:   "expense-tracker",
		Short: "Track personal expenses and their due dates",
		Long: "Keeps a list of single and recurring expenses with due dates and payment status. " +
			"Recurring expenses come back as unpaid a fixed number of days after they were paid.",
		SilenceUsage: true,
	}
	root.AddCommand(
		listCmd(),
		addCmd(),
		payCmd(),
		removeCmd(),
		dueTodayCmd(),
		exportCmd(),
		configCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
