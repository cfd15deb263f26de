// forgec plan
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/forgec/forgec/internal/config"
	"github.com/forgec/forgec/internal/graph"
	"github.com/forgec/forgec/internal/msg"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the planned build graph without building anything",
	Args:  cobra.ArbitraryArgs,
	RunE:  doPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	addBuildFlags(planCmd)
}

func doPlan(cmd *cobra.Command, args []string) error {
	cfg, warnings, err := config.LoadConfig(flagConfigPath)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		msg.Warn("%s", w)
	}

	ov := buildOverrides(args)
	config.Apply(cfg, ov)

	summary, err := graph.Preview(cfg)
	if err != nil {
		return err
	}

	for _, id := range summary.Order {
		fmt.Printf("%s %s\n", color.HiCyanString(summary.Kinds[id]), id)
		if deps := summary.ResolvedDeps[id]; len(deps) > 0 {
			fmt.Printf("  depends on: %v\n", deps)
		}
		if unresolved := summary.Unresolved[id]; len(unresolved) > 0 {
			fmt.Printf("  %s: %v\n", color.YellowString("unresolved"), unresolved)
		}
	}
	return nil
}
