package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/earlysteps-ai/earlysteps/internal/cli"
	"github.com/earlysteps-ai/earlysteps/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "earlystepsd",
		Short: "Earlysteps daemon",
		Long:  "Earlysteps daemon for running the early-intervention planning and chat API server",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
