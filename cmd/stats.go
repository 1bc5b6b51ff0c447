package cmd

import (
	"github.com/spf13/cobra"

	"github.com/khrees2412/talentflow/internal/service"
	"github.com/khrees2412/talentflow/pkg/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View pipeline statistics",
	Long:  "Display record counts and how candidates are spread across the hiring pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		d, err := svc.GetDashboard(cmd.Context())
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render("Pipeline Statistics"))

		cmd.Printf("%s\n", labelStyle.Render("Overview"))
		cmd.Printf("  Jobs: %d (active %d, archived %d)\n", d.Jobs,
			d.JobsByStatus[models.JobStatusActive], d.JobsByStatus[models.JobStatusArchived])
		cmd.Printf("  Candidates: %d\n", d.Candidates)
		cmd.Printf("  Assessments: %d\n", d.Assessments)
		cmd.Printf("  Applications: %d\n", d.Applications)

		if d.Candidates == 0 {
			return nil
		}

		cmd.Printf("\n%s\n", labelStyle.Render("Stage Breakdown"))
		for _, stage := range models.Stages {
			n := d.CandidatesByStage[stage]
			cmd.Printf("  %-12s %4d (%.1f%%)\n", service.StageLabel(stage), n, percent(n, d.Candidates))
		}

		hired := d.CandidatesByStage[models.StageHired]
		offers := d.CandidatesByStage[models.StageOffer] + hired
		interviewing := d.CandidatesByStage[models.StageScreen] + d.CandidatesByStage[models.StageTech] + offers
		cmd.Printf("\n%s\n", labelStyle.Render("Conversion"))
		cmd.Printf("  Interview Rate: %.1f%%\n", percent(interviewing, d.Candidates))
		cmd.Printf("  Offer Rate: %.1f%%\n", percent(offers, d.Candidates))
		cmd.Printf("  Hire Rate: %.1f%%\n", percent(hired, d.Candidates))
		return nil
	},
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
