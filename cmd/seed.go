package cmd

import (
	"github.com/spf13/cobra"

	"github.com/khrees2412/talentflow/internal/app"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an empty store with sample data",
	Long: `Generate sample jobs, candidates, assessments and applications. Nothing is
written when the store already has jobs. Counts and the random seed come from
the seed_* config keys.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		rep, err := a.Seed(cmd.Context())
		if err != nil {
			return err
		}
		if !rep.Seeded {
			cmd.Println("Store already has jobs, nothing seeded.")
			return nil
		}
		cmd.Printf("✓ Seeded %d jobs, %d candidates, %d assessments, %d applications\n",
			rep.Jobs, rep.Candidates, rep.Assessments, rep.Applications)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
