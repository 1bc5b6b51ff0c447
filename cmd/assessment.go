package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khrees2412/talentflow/pkg/models"
)

var assessmentCmd = &cobra.Command{
	Use:   "assessment",
	Short: "View assessments and record candidate responses",
}

var listAssessmentsCmd = &cobra.Command{
	Use:   "list",
	Short: "List assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		jobID, _ := cmd.Flags().GetString("job")
		list, err := svc.ListAssessments(cmd.Context(), jobID)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			cmd.Println("No assessments found.")
			return nil
		}

		cmd.Println(titleStyle.Render("Assessments"))
		for _, a := range list {
			questions := 0
			for _, sec := range a.Sections {
				questions += len(sec.Questions)
			}
			cmd.Printf("  • %s %s\n", a.Title, mutedStyle.Render(fmt.Sprintf("(%d sections, %d questions)", len(a.Sections), questions)))
			cmd.Printf("    %s %s  %s %s\n", labelStyle.Render("ID:"), a.ID, labelStyle.Render("Job:"), a.JobID)
		}
		return nil
	},
}

var showAssessmentCmd = &cobra.Command{
	Use:   "show <assessment-id>",
	Short: "Show an assessment with its questions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		a, err := svc.GetAssessment(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render(a.Title))
		field(cmd, "ID:", a.ID)
		field(cmd, "Job:", a.JobID)
		if a.Description != "" {
			cmd.Println(a.Description)
		}
		for _, sec := range a.Sections {
			cmd.Printf("\n%s\n", labelStyle.Render(sec.Title))
			for _, q := range sec.Questions {
				marker := " "
				if q.Required {
					marker = "*"
				}
				cmd.Printf("  %s %s %s\n", marker, q.Title, mutedStyle.Render("["+q.ID+", "+string(q.Type)+"]"))
				if len(q.Options) > 0 {
					cmd.Printf("      %s\n", mutedStyle.Render(strings.Join(q.Options, " / ")))
				}
				if c := q.ConditionalLogic; c != nil {
					cmd.Printf("      %s\n", mutedStyle.Render(fmt.Sprintf("shown when %s %s %q", c.DependsOnQuestionID, c.Operator, c.Value)))
				}
			}
		}
		return nil
	},
}

var submitAssessmentCmd = &cobra.Command{
	Use:   "submit <candidate-id> <assessment-id>",
	Short: "Record a candidate's answers",
	Long:  "Record a candidate's answers from a JSON object keyed by question ID. A later submission replaces the earlier one.",
	Args:  cobra.ExactArgs(2),
	Example: `  talentflow assessment submit 3f2a... 7c4d... --answers '{"q1":"yes","q2":5}'
  talentflow assessment submit 3f2a... 7c4d... --file answers.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		raw, _ := cmd.Flags().GetString("answers")
		if path, _ := cmd.Flags().GetString("file"); path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read answers: %w", err)
			}
			raw = string(data)
		}
		if raw == "" {
			return fmt.Errorf("answers are required, use --answers or --file")
		}

		var answers map[string]any
		if err := json.Unmarshal([]byte(raw), &answers); err != nil {
			return fmt.Errorf("parse answers: %w", err)
		}

		resp, err := svc.SubmitAssessmentResponse(cmd.Context(), args[0], args[1], answers)
		if err != nil {
			return err
		}
		cmd.Printf("✓ Response saved: %d answers (ID: %s)\n", len(resp.Answers), resp.ID)
		return nil
	},
}

var responseCmd = &cobra.Command{
	Use:   "response <candidate-id> <assessment-id>",
	Short: "Show a candidate's answers to an assessment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		a, err := svc.GetAssessment(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		resp, err := svc.GetAssessmentResponse(cmd.Context(), args[0], a.ID)
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render(a.Title))
		field(cmd, "Submitted:", resp.UpdatedAt.Format("Jan 2, 2006 15:04"))
		for _, sec := range a.Sections {
			for _, q := range sec.Questions {
				v, ok := resp.Answers[q.ID]
				if !ok {
					continue
				}
				cmd.Printf("\n%s\n  %s\n", labelStyle.Render(q.Title), formatAnswer(q, v))
			}
		}
		return nil
	},
}

func formatAnswer(q models.Question, v any) string {
	if q.Type == models.QuestionMultiChoice {
		if items, ok := v.([]any); ok {
			parts := make([]string, len(items))
			for i, item := range items {
				parts[i] = fmt.Sprint(item)
			}
			return strings.Join(parts, ", ")
		}
	}
	return fmt.Sprint(v)
}

func init() {
	rootCmd.AddCommand(assessmentCmd)
	assessmentCmd.AddCommand(listAssessmentsCmd, showAssessmentCmd, submitAssessmentCmd, responseCmd)

	listAssessmentsCmd.Flags().String("job", "", "Only assessments for this job ID")

	submitAssessmentCmd.Flags().String("answers", "", "Answers as a JSON object")
	submitAssessmentCmd.Flags().String("file", "", "Read answers from a JSON file")
}
