package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	AgeMonths *int   `json:"age_months,omitempty"`
	Domain    string `json:"domain,omitempty"`
}

// ChatCmd returns the chat command
func ChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Send a chat message",
		Long:  "Send a conversational message; pass --session to continue a prior conversation",
		Args:  cobra.ExactArgs(1),
		RunE:  runChat,
	}

	cmd.Flags().String("session", "", "Session ID for conversation continuity")
	cmd.Flags().Int("age", -1, "Child's age in months for context (optional)")
	cmd.Flags().String("domain", "", "Development domain for context (optional)")
	cmd.Flags().String("api-url", "", "API base URL (overrides EARLYSTEPS_API_URL)")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	c, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	sessionID, _ := cmd.Flags().GetString("session")
	domainLabel, _ := cmd.Flags().GetString("domain")

	req := chatRequest{
		Message:   args[0],
		SessionID: sessionID,
		Domain:    domainLabel,
	}
	if age, _ := cmd.Flags().GetInt("age"); age >= 0 {
		req.AgeMonths = &age
	}

	resp, err := c.Post("/api/chat", req)
	if err != nil {
		return err
	}

	if err := printData(resp.Data); err != nil {
		return fmt.Errorf("failed to print response: %w", err)
	}
	return nil
}
