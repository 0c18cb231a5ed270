package client

import (
	"github.com/spf13/cobra"
)

type planRequest struct {
	AgeMonths int    `json:"age_months"`
	Domain    string `json:"domain"`
	ExtraInfo string `json:"extra_info,omitempty"`
}

// PlanCmd returns the plan command
func PlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate an intervention plan",
		Long:  "Generate an age-appropriate, domain-specific intervention plan grounded in the uploaded knowledge base",
		RunE:  runPlan,
	}

	cmd.Flags().Int("age", 0, "Child's age in months (0-36)")
	cmd.Flags().String("domain", "", "Development domain (e.g. communication, fine_motor)")
	cmd.Flags().String("extra", "", "Additional context about the child")
	cmd.Flags().String("api-url", "", "API base URL (overrides EARLYSTEPS_API_URL)")
	_ = cmd.MarkFlagRequired("age")
	_ = cmd.MarkFlagRequired("domain")

	return cmd
}

func runPlan(cmd *cobra.Command, args []string) error {
	c, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	age, _ := cmd.Flags().GetInt("age")
	domainLabel, _ := cmd.Flags().GetString("domain")
	extra, _ := cmd.Flags().GetString("extra")

	resp, err := c.Post("/api/plan", planRequest{
		AgeMonths: age,
		Domain:    domainLabel,
		ExtraInfo: extra,
	})
	if err != nil {
		return err
	}

	return printData(resp.Data)
}
