package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khrees2412/talentflow/internal/service"
	"github.com/khrees2412/talentflow/pkg/models"
)

var candidateCmd = &cobra.Command{
	Use:     "candidate",
	Aliases: []string{"cand"},
	Short:   "Manage candidates in the pipeline",
}

var addCandidateCmd = &cobra.Command{
	Use:     "add",
	Short:   "Add a candidate",
	Example: `  talentflow candidate add --name "Ada Obi" --email ada@example.com --job 3f2a...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		f := cmd.Flags()
		name, _ := f.GetString("name")
		email, _ := f.GetString("email")
		phone, _ := f.GetString("phone")
		jobID, _ := f.GetString("job")
		stage, _ := f.GetString("stage")
		coverLetter, _ := f.GetString("cover-letter")

		c, err := svc.CreateCandidate(cmd.Context(), models.Candidate{
			Name:        name,
			Email:       email,
			Phone:       phone,
			JobID:       jobID,
			Stage:       models.Stage(stage),
			CoverLetter: coverLetter,
		})
		if err != nil {
			return fmt.Errorf("save candidate: %w", err)
		}
		cmd.Printf("✓ Candidate added: %s <%s> (ID: %s)\n", c.Name, c.Email, c.ID)
		return nil
	},
}

var listCandidatesCmd = &cobra.Command{
	Use:   "list",
	Short: "List candidates",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		f := cmd.Flags()
		stage, _ := f.GetString("stage")
		jobID, _ := f.GetString("job")
		search, _ := f.GetString("search")
		page, _ := f.GetInt("page")
		size, _ := f.GetInt("page-size")

		result, err := svc.ListCandidates(cmd.Context(), service.CandidateFilter{
			Stage:       models.Stage(stage),
			JobID:       jobID,
			Search:      search,
			PageRequest: service.PageRequest{Page: page, PageSize: size},
		})
		if err != nil {
			return fmt.Errorf("fetch candidates: %w", err)
		}
		if len(result.Data) == 0 {
			cmd.Println("No candidates found.")
			return nil
		}

		cmd.Println(titleStyle.Render("Candidates"))
		for _, c := range result.Data {
			cmd.Printf("  • %s %s %s\n", c.Name, mutedStyle.Render("<"+c.Email+">"), stageBadge(c.Stage))
			cmd.Printf("    %s %s\n", labelStyle.Render("ID:"), c.ID)
		}
		pageFooter(cmd, result)
		return nil
	},
}

var showCandidateCmd = &cobra.Command{
	Use:   "show <candidate-id>",
	Short: "Show a candidate with their applications",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		c, err := svc.GetCandidate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		status, err := svc.GetCandidateJobStatus(cmd.Context(), c.ID)
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render(c.Name))
		field(cmd, "ID:", c.ID)
		field(cmd, "Email:", c.Email)
		if c.Phone != "" {
			field(cmd, "Phone:", c.Phone)
		}
		cmd.Printf("%s %s\n", labelStyle.Render("Stage:"), stageBadge(c.Stage))
		if c.JobID != "" {
			if job, err := svc.GetJob(cmd.Context(), c.JobID); err == nil {
				field(cmd, "Job:", job.Title)
			}
		}
		field(cmd, "Added:", c.CreatedAt.Format("Jan 2, 2006"))
		if c.CoverLetter != "" {
			cmd.Println(labelStyle.Render("\nCover Letter:"))
			cmd.Println(c.CoverLetter)
		}

		sum := status.Summary
		cmd.Printf("\n%s %d  (applied %d, interviewing %d, hired %d, rejected %d)\n",
			labelStyle.Render("Applications:"), sum.TotalApplications,
			len(sum.Applied), len(sum.InterviewScheduled), len(sum.Hired), len(sum.Rejected))
		for _, a := range status.Applications {
			cmd.Printf("  • %s %s\n", a.JobTitle, stageBadge(a.Status))
		}
		return nil
	},
}

var stageCandidateCmd = &cobra.Command{
	Use:   "stage <candidate-id> <stage>",
	Short: "Move a candidate to another pipeline stage",
	Long:  "Move a candidate to another stage. Any stage can follow any other; every move is logged on the timeline.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		stage := models.Stage(args[1])
		if !stage.Valid() {
			return fmt.Errorf("invalid stage %q, must be one of: %s", args[1], stageNames())
		}
		c, err := svc.UpdateCandidate(cmd.Context(), args[0], service.CandidatePatch{Stage: &stage})
		if err != nil {
			return err
		}
		cmd.Printf("✓ %s moved to %s\n", c.Name, stageBadge(c.Stage))
		return nil
	},
}

var removeCandidateCmd = &cobra.Command{
	Use:   "remove <candidate-id>",
	Short: "Remove a candidate with their timeline, notes and responses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		c, err := svc.GetCandidate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := svc.DeleteCandidate(cmd.Context(), c.ID); err != nil {
			return fmt.Errorf("remove candidate: %w", err)
		}
		cmd.Printf("✓ Removed candidate: %s\n", c.Name)
		return nil
	},
}

var timelineCmd = &cobra.Command{
	Use:   "timeline <candidate-id>",
	Short: "Show a candidate's timeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		events, err := svc.GetCandidateTimeline(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render("Timeline"))
		for _, e := range events {
			cmd.Printf("%s  %s\n", mutedStyle.Render(e.CreatedAt.Format("Jan 2 15:04")), labelStyle.Render(e.Title))
			if e.Description != "" {
				cmd.Printf("              %s\n", e.Description)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(candidateCmd)
	candidateCmd.AddCommand(addCandidateCmd, listCandidatesCmd, showCandidateCmd, stageCandidateCmd, removeCandidateCmd, timelineCmd)

	addCandidateCmd.Flags().String("name", "", "Full name")
	addCandidateCmd.Flags().String("email", "", "Email address")
	addCandidateCmd.Flags().String("phone", "", "Phone number")
	addCandidateCmd.Flags().String("job", "", "ID of the job applied for")
	addCandidateCmd.Flags().String("stage", "", "Initial stage (default applied)")
	addCandidateCmd.Flags().String("cover-letter", "", "Cover letter text")
	_ = addCandidateCmd.MarkFlagRequired("name")
	_ = addCandidateCmd.MarkFlagRequired("email")

	listCandidatesCmd.Flags().String("stage", "", "Filter by stage")
	listCandidatesCmd.Flags().String("job", "", "Filter by job ID")
	listCandidatesCmd.Flags().String("search", "", "Search name and email")
	listCandidatesCmd.Flags().Int("page", 0, "Page number (enables pagination)")
	listCandidatesCmd.Flags().Int("page-size", 0, "Page size (enables pagination)")
}
