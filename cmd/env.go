// forgec env
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/forgec/forgec/internal/devenv"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print a shell snippet exposing the resolved toolchain",
	Long:  `Print a shell snippet exposing the resolved toolchain. Use with eval "$(forgec env)".`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadAndPlan(nil)
		if err != nil {
			return err
		}
		devenv.Print(os.Stdout, cfg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(envCmd)
}
