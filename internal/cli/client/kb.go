package client

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// KBCmd returns the kb command group
func KBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Manage the knowledge base",
	}

	cmd.AddCommand(kbUploadCmd())

	return cmd
}

func kbUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a knowledge base file",
		Long:  "Upload a .txt or .md file, replacing the server's knowledge base",
		Args:  cobra.ExactArgs(1),
		RunE:  runKBUpload,
	}

	cmd.Flags().String("api-url", "", "API base URL (overrides EARLYSTEPS_API_URL)")

	return cmd
}

func runKBUpload(cmd *cobra.Command, args []string) error {
	path := args[0]
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".txt" && ext != ".md" {
		return fmt.Errorf("only .txt and .md files are supported, got %q", ext)
	}

	c, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := c.PostFile("/api/rag/upload", path)
	if err != nil {
		return err
	}

	return printData(resp.Data)
}
