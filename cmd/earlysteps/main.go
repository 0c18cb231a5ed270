package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/earlysteps-ai/earlysteps/internal/cli"
	"github.com/earlysteps-ai/earlysteps/internal/cli/client"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "earlysteps",
		Short: "Earlysteps CLI client",
		Long:  "CLI client for the earlysteps early-intervention planning and chat API",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(client.PlanCmd())
	rootCmd.AddCommand(client.ChatCmd())
	rootCmd.AddCommand(client.KBCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
