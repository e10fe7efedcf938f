package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .taskboard.yaml to the base path",
	Long: `Write the current configuration (defaults, unless a config file already
exists) to .taskboard.yaml in the base path, so it can be edited by hand.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if ConfigMgr == nil {
			return fmt.Errorf("configuration manager not initialized")
		}

		cfg, err := ConfigMgr.LoadGlobalConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := ConfigMgr.SaveGlobalConfig(cfg); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Wrote %s\n", filepath.Join(BasePath, ".taskboard.yaml"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
