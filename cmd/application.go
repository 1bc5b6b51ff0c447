package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khrees2412/talentflow/internal/service"
	"github.com/khrees2412/talentflow/pkg/models"
)

var applyCmd = &cobra.Command{
	Use:     "apply <candidate-id> <job-id>",
	Short:   "Apply a candidate to a job",
	Args:    cobra.ExactArgs(2),
	Example: `  talentflow apply 3f2a... 9b1c...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		application, err := svc.ApplyCandidateToJob(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		cmd.Printf("✓ Applied to: %s (application ID: %s)\n", application.JobTitle, application.ID)
		return nil
	},
}

var applicationCmd = &cobra.Command{
	Use:     "application",
	Aliases: []string{"app"},
	Short:   "View and update job applications",
}

var listApplicationsCmd = &cobra.Command{
	Use:   "list <candidate-id>",
	Short: "List a candidate's applications grouped by status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		status, err := svc.GetCandidateJobStatus(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(status.Applications) == 0 {
			cmd.Println("No applications yet. Apply with 'talentflow apply <candidate-id> <job-id>'")
			return nil
		}

		filter, _ := cmd.Flags().GetString("filter")
		if filter != "" && !models.Stage(filter).Valid() {
			return fmt.Errorf("invalid status %q, must be one of: %s", filter, stageNames())
		}

		cmd.Println(titleStyle.Render("Applications"))

		groups := make(map[models.Stage][]service.ApplicationDetail)
		for _, a := range status.Applications {
			groups[a.Status] = append(groups[a.Status], a)
		}

		shown := 0
		for _, stage := range models.Stages {
			apps := groups[stage]
			if len(apps) == 0 || (filter != "" && string(stage) != filter) {
				continue
			}
			shown += len(apps)

			cmd.Printf("\n%s (%d)\n", stageBadge(stage), len(apps))
			for _, a := range apps {
				title := a.JobTitle
				if a.Job == nil {
					title += mutedStyle.Render(" (job removed)")
				}
				cmd.Printf("  • %s\n", title)
				cmd.Printf("    %s %s | Applied: %s\n",
					labelStyle.Render("ID:"),
					a.ID,
					a.AppliedAt.Format("Jan 2, 2006"))
				if a.Notes != "" {
					cmd.Printf("    %s %s\n", labelStyle.Render("Notes:"), a.Notes)
				}
			}
		}

		sum := status.Summary
		cmd.Printf("\n%s %d shown of %d (hired %d, interviewing %d, rejected %d)\n",
			labelStyle.Render("Total Applications:"), shown, sum.TotalApplications,
			len(sum.Hired), len(sum.InterviewScheduled), len(sum.Rejected))
		return nil
	},
}

var updateApplicationCmd = &cobra.Command{
	Use:   "status <application-id>",
	Short: "Update application status",
	Args:  cobra.ExactArgs(1),
	Example: `  talentflow application status 5d0e... --status tech
  talentflow application status 5d0e... --status rejected --notes "Not a good fit"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		newStatus, _ := cmd.Flags().GetString("status")
		notes, _ := cmd.Flags().GetString("notes")

		application, err := svc.UpdateJobApplicationStatus(cmd.Context(), args[0], models.Stage(newStatus), notes)
		if err != nil {
			return err
		}

		cmd.Printf("✓ Application status updated to: %s\n", stageBadge(application.Status))
		if notes != "" {
			cmd.Printf("  Notes: %s\n", notes)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd, applicationCmd)
	applicationCmd.AddCommand(listApplicationsCmd, updateApplicationCmd)

	listApplicationsCmd.Flags().String("filter", "", "Only show applications with this status")

	updateApplicationCmd.Flags().String("status", "", "New status (applied, screen, tech, offer, hired, rejected)")
	updateApplicationCmd.Flags().String("notes", "", "Notes for the status change")
	_ = updateApplicationCmd.MarkFlagRequired("status")
}
