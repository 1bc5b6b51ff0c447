package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/khrees2412/talentflow/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "talentflow",
	Short: "Local hiring pipeline: jobs, candidates, assessments",
	Long: `Talentflow keeps a local record of open jobs, candidates moving through the
hiring pipeline, their notes, assessments and job applications.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env file is optional; TALENTFLOW_* values in it feed the config.
		_ = godotenv.Load()

		application, err := app.NewApp(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		cmd.SetContext(app.SetAppInContext(cmd.Context(), application))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetOut(os.Stdout)
	if _, err := execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		stop()
		os.Exit(1)
	}
}

// execute runs the command line and closes the app the command opened,
// whether or not the command succeeded.
func execute(ctx context.Context) (*cobra.Command, error) {
	executed, err := rootCmd.ExecuteContextC(ctx)
	if executed != nil && executed.Context() != nil {
		if a := app.GetAppFromContext(executed.Context()); a != nil {
			err = errors.Join(err, a.Close())
		}
	}
	return executed, err
}
