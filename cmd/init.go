// forgec init [name], forgec new [path]
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/forgec/forgec/internal/msg"
	"github.com/forgec/forgec/internal/scaffold"
)

var library bool

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a new project in the current directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scaffold.InitIn(".", args[0], library)
	},
}

var newCmd = &cobra.Command{
	Use:   "new [path]",
	Short: "Create a new project in a new directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := os.MkdirAll(args[0], 0o755); err != nil {
			msg.Fatal("mkdir %s: %v", args[0], err)
		}
		scaffold.InitIn(args[0], filepath.Base(args[0]), library)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&library, "lib", "l", false, "create a shared-library target")

	rootCmd.AddCommand(newCmd)
	newCmd.Flags().BoolVarP(&library, "lib", "l", false, "create a shared-library target")
}
