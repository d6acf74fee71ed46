package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "streak",
		Short:   "Track and protect your daily GitHub streak",
		Long:    "Checks GitHub for daily activity at fixed times and reminds you before your streak breaks.\nRun without a command to start the scheduled loop.",
		Version: Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE:          a.runLoop,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(runCmd(a))
	rootCmd.AddCommand(statsCmd(a))
	rootCmd.AddCommand(checkCmd(a))
	rootCmd.AddCommand(setupCmd(a))
	rootCmd.AddCommand(modeCmd(a))
	rootCmd.AddCommand(historyCmd(a))
	rootCmd.AddCommand(importCmd(a))
	rootCmd.AddCommand(mcpCmd(a))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		a.close()
		if !errors.Is(err, errQuiet) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
