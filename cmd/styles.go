package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/khrees2412/talentflow/internal/app"
	"github.com/khrees2412/talentflow/internal/service"
	"github.com/khrees2412/talentflow/pkg/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

var stageColors = map[models.Stage]lipgloss.Color{
	models.StageApplied:  lipgloss.Color("7"),
	models.StageScreen:   lipgloss.Color("14"),
	models.StageTech:     lipgloss.Color("12"),
	models.StageOffer:    lipgloss.Color("11"),
	models.StageHired:    lipgloss.Color("10"),
	models.StageRejected: lipgloss.Color("9"),
}

// stageBadge renders a stage in its pipeline colour.
func stageBadge(s models.Stage) string {
	return lipgloss.NewStyle().Foreground(stageColors[s]).Bold(true).Render(service.StageLabel(s))
}

func field(cmd *cobra.Command, label string, value any) {
	cmd.Printf("%s %s\n", labelStyle.Render(label), valueStyle.Render(fmt.Sprint(value)))
}

func records(cmd *cobra.Command) (*service.Service, error) {
	a, err := app.FromContext(cmd.Context())
	if err != nil {
		return nil, err
	}
	return a.Records, nil
}

func pageFooter[T any](cmd *cobra.Command, p service.Page[T]) {
	if p.Paginated {
		cmd.Println(mutedStyle.Render(fmt.Sprintf("\nPage %d of %d (%d total)", p.Page, p.TotalPages, p.Total)))
		return
	}
	cmd.Println(mutedStyle.Render(fmt.Sprintf("\n%d total", p.Total)))
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func stageNames() string {
	names := make([]string, len(models.Stages))
	for i, s := range models.Stages {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
