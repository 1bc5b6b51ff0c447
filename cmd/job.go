package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khrees2412/talentflow/internal/service"
	"github.com/khrees2412/talentflow/pkg/models"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Manage job postings",
	Long:  "Add, list, view, update, archive, reorder and remove job postings",
}

var addJobCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a job posting",
	Example: `  talentflow job add --title "Backend Engineer" --department Engineering --location Remote
  talentflow job add --title "Designer" --type contract --tags figma,remote`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		f := cmd.Flags()
		title, _ := f.GetString("title")
		slug, _ := f.GetString("slug")
		description, _ := f.GetString("description")
		location, _ := f.GetString("location")
		salary, _ := f.GetString("salary")
		jobType, _ := f.GetString("type")
		department, _ := f.GetString("department")
		tags, _ := f.GetString("tags")
		requirements, _ := f.GetStringArray("requirement")
		benefits, _ := f.GetStringArray("benefit")
		order, _ := f.GetInt("order")

		job, err := svc.CreateJob(cmd.Context(), models.Job{
			Title:        title,
			Slug:         slug,
			Description:  description,
			Requirements: requirements,
			Benefits:     benefits,
			Tags:         splitList(tags),
			Location:     location,
			Salary:       salary,
			Type:         models.JobType(jobType),
			Department:   department,
			Order:        order,
		})
		if err != nil {
			return fmt.Errorf("save job: %w", err)
		}

		cmd.Printf("✓ Job added: %s (slug: %s, ID: %s)\n", job.Title, job.Slug, job.ID)
		return nil
	},
}

var listJobsCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		f := cmd.Flags()
		status, _ := f.GetString("status")
		tags, _ := f.GetString("tags")
		search, _ := f.GetString("search")
		page, _ := f.GetInt("page")
		size, _ := f.GetInt("page-size")

		result, err := svc.ListJobs(cmd.Context(), service.JobFilter{
			Status:      models.JobStatus(status),
			Tags:        splitList(tags),
			Search:      search,
			PageRequest: service.PageRequest{Page: page, PageSize: size},
		})
		if err != nil {
			return fmt.Errorf("fetch jobs: %w", err)
		}

		if len(result.Data) == 0 {
			cmd.Println("No jobs found. Add one with 'talentflow job add --title TITLE'")
			return nil
		}

		cmd.Println(titleStyle.Render("Jobs"))
		for _, job := range result.Data {
			line := fmt.Sprintf("%s. %s", labelStyle.Render(strconv.Itoa(job.Order)), job.Title)
			if job.Status == models.JobStatusArchived {
				line += mutedStyle.Render(" (archived)")
			}
			cmd.Printf("\n%s\n", line)
			cmd.Printf("   %s %s\n", labelStyle.Render("Slug:"), job.Slug)
			if job.Department != "" || job.Location != "" {
				cmd.Printf("   %s %s · %s\n", labelStyle.Render("Where:"), job.Department, job.Location)
			}
			if len(job.Tags) > 0 {
				cmd.Printf("   %s %s\n", labelStyle.Render("Tags:"), strings.Join(job.Tags, ", "))
			}
			cmd.Printf("   %s %s\n", labelStyle.Render("ID:"), job.ID)
		}
		pageFooter(cmd, result)
		return nil
	},
}

var showJobCmd = &cobra.Command{
	Use:   "show <job-id|slug>",
	Short: "Show details of a specific job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		job, err := svc.GetJob(cmd.Context(), args[0])
		if errors.Is(err, service.ErrNotFound) {
			job, err = svc.GetJobBySlug(cmd.Context(), args[0])
		}
		if err != nil {
			return fmt.Errorf("fetch job: %w", err)
		}

		cmd.Println(titleStyle.Render(job.Title))
		field(cmd, "ID:", job.ID)
		field(cmd, "Slug:", job.Slug)
		field(cmd, "Status:", job.Status)
		field(cmd, "Type:", job.Type)
		field(cmd, "Order:", job.Order)
		if job.Department != "" {
			field(cmd, "Department:", job.Department)
		}
		if job.Location != "" {
			field(cmd, "Location:", job.Location)
		}
		if job.Salary != "" {
			field(cmd, "Salary:", job.Salary)
		}
		if len(job.Tags) > 0 {
			field(cmd, "Tags:", strings.Join(job.Tags, ", "))
		}
		field(cmd, "Created:", job.CreatedAt.Format("Jan 2, 2006 15:04"))
		field(cmd, "Updated:", job.UpdatedAt.Format("Jan 2, 2006 15:04"))

		if job.Description != "" {
			cmd.Println(labelStyle.Render("\nDescription:"))
			cmd.Println(job.Description)
		}
		printList(cmd, "Requirements:", job.Requirements)
		printList(cmd, "Benefits:", job.Benefits)

		candidates, err := svc.ListCandidates(cmd.Context(), service.CandidateFilter{JobID: job.ID})
		if err != nil {
			return fmt.Errorf("fetch candidates: %w", err)
		}
		cmd.Printf("\n%s %d\n", labelStyle.Render("Candidates:"), candidates.Total)
		return nil
	},
}

var updateJobCmd = &cobra.Command{
	Use:   "update <job-id>",
	Short: "Update fields of a job",
	Args:  cobra.ExactArgs(1),
	Example: `  talentflow job update 3f2a... --title "Senior Backend Engineer"
  talentflow job update 3f2a... --tags go,remote --salary "$150k"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		f := cmd.Flags()
		var patch service.JobPatch
		patch.Title = changedString(cmd, "title")
		patch.Slug = changedString(cmd, "slug")
		patch.Description = changedString(cmd, "description")
		patch.Location = changedString(cmd, "location")
		patch.Salary = changedString(cmd, "salary")
		patch.Department = changedString(cmd, "department")
		if s := changedString(cmd, "type"); s != nil {
			t := models.JobType(*s)
			patch.Type = &t
		}
		if s := changedString(cmd, "status"); s != nil {
			st := models.JobStatus(*s)
			patch.Status = &st
		}
		if s := changedString(cmd, "tags"); s != nil {
			tags := splitList(*s)
			patch.Tags = &tags
		}
		if f.Changed("requirement") {
			reqs, _ := f.GetStringArray("requirement")
			patch.Requirements = &reqs
		}
		if f.Changed("benefit") {
			benefits, _ := f.GetStringArray("benefit")
			patch.Benefits = &benefits
		}

		job, err := svc.UpdateJob(cmd.Context(), args[0], patch)
		if err != nil {
			return err
		}
		cmd.Printf("✓ Job updated: %s (slug: %s)\n", job.Title, job.Slug)
		return nil
	},
}

var archiveJobCmd = &cobra.Command{
	Use:   "archive <job-id>",
	Short: "Archive a job, or restore it with --restore",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		status := models.JobStatusArchived
		if restore, _ := cmd.Flags().GetBool("restore"); restore {
			status = models.JobStatusActive
		}
		job, err := svc.UpdateJob(cmd.Context(), args[0], service.JobPatch{Status: &status})
		if err != nil {
			return err
		}
		cmd.Printf("✓ %s is now %s\n", job.Title, job.Status)
		return nil
	},
}

var removeJobCmd = &cobra.Command{
	Use:   "remove <job-id>",
	Short: "Remove a job with its candidates and assessments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		job, err := svc.GetJob(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := svc.DeleteJob(cmd.Context(), job.ID); err != nil {
			return fmt.Errorf("remove job: %w", err)
		}

		cmd.Printf("✓ Removed job: %s\n", job.Title)
		return nil
	},
}

var reorderJobsCmd = &cobra.Command{
	Use:     "reorder <from-order> <to-order>",
	Short:   "Swap the display positions of two jobs",
	Args:    cobra.ExactArgs(2),
	Example: `  talentflow job reorder 1 4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := records(cmd)
		if err != nil {
			return err
		}

		from, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid order %q: must be a number", args[0])
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid order %q: must be a number", args[1])
		}

		if err := svc.ReorderJobs(cmd.Context(), from, to); err != nil {
			return err
		}
		cmd.Printf("✓ Swapped positions %d and %d\n", from, to)
		return nil
	},
}

func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func printList(cmd *cobra.Command, label string, items []string) {
	if len(items) == 0 {
		return
	}
	cmd.Println(labelStyle.Render("\n" + label))
	for _, item := range items {
		cmd.Printf("  • %s\n", item)
	}
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(addJobCmd, listJobsCmd, showJobCmd, updateJobCmd, archiveJobCmd, removeJobCmd, reorderJobsCmd)

	for _, c := range []*cobra.Command{addJobCmd, updateJobCmd} {
		c.Flags().String("title", "", "Job title")
		c.Flags().String("slug", "", "URL slug (derived from the title when omitted)")
		c.Flags().String("description", "", "Job description")
		c.Flags().String("location", "", "Job location")
		c.Flags().String("salary", "", "Salary range, free text")
		c.Flags().String("type", "", "Employment type: full-time, part-time, contract, internship")
		c.Flags().String("department", "", "Department")
		c.Flags().String("tags", "", "Comma separated tags")
		c.Flags().StringArray("requirement", nil, "Requirement (repeatable)")
		c.Flags().StringArray("benefit", nil, "Benefit (repeatable)")
	}
	addJobCmd.Flags().Int("order", 0, "Display position (default: after the last job)")
	_ = addJobCmd.MarkFlagRequired("title")
	updateJobCmd.Flags().String("status", "", "Status: active, archived")

	listJobsCmd.Flags().String("status", "", "Filter by status: active, archived")
	listJobsCmd.Flags().String("tags", "", "Comma separated tags, matches any")
	listJobsCmd.Flags().String("search", "", "Search title, description and tags")
	listJobsCmd.Flags().Int("page", 0, "Page number (enables pagination)")
	listJobsCmd.Flags().Int("page-size", 0, "Page size (enables pagination)")

	archiveJobCmd.Flags().Bool("restore", false, "Set the job back to active")
}
