// forgec clean
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgec/forgec/internal/config"
	"github.com/forgec/forgec/internal/executor"
	"github.com/forgec/forgec/internal/msg"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove build output directories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, warnings, err := config.LoadConfig(flagConfigPath)
		if err != nil {
			return err
		}
		for _, w := range warnings {
			msg.Warn("%s", w)
		}
		if err := executor.Clean(cfg); err != nil {
			return err
		}
		fmt.Println("Cleaned.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVar(&flagConfigPath, "config", "forgec.ini", "path to the project INI file")
}
