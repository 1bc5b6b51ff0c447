package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/khrees2412/talentflow/internal/config"
	"github.com/khrees2412/talentflow/internal/database"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
	// Config commands must work without opening the store.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return nil
	},
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Println(titleStyle.Render("Configuration"))
		field(cmd, "Config File:", config.GetConfigPath())
		field(cmd, "Database:", filepath.Join(config.AppConfig.DataDir, database.DatabaseName))
		for _, key := range config.Keys() {
			field(cmd, key+":", config.Get(key))
		}
		return nil
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  talentflow config set --key log_level --value debug
  talentflow config set --key seed_on_start --value false
  talentflow config set --key page_size --value 25`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if err := config.Set(key, value); err != nil {
			return err
		}
		cmd.Printf("✓ Configuration updated: %s = %s\n", key, config.Get(key))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd, setConfigCmd)

	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
	_ = setConfigCmd.MarkFlagRequired("key")
	_ = setConfigCmd.MarkFlagRequired("value")
}
