// forgec run [tool-name] [-- program-args...]
package cmd

import (
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/forgec/forgec/internal/executor"
	"github.com/forgec/forgec/internal/graph"
	"github.com/forgec/forgec/internal/msg"
	"github.com/forgec/forgec/internal/toolchain"
)

var runCmd = &cobra.Command{
	Use:   "run [tool-name] [-- program-args...]",
	Short: "Build the project and run one of its tools",
	Long:  `Build the project, then execute the named tool (or the first executable in build order if none is named), forwarding any arguments after "--".`,
	Args:  cobra.ArbitraryArgs,
	RunE:  doRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addBuildFlags(runCmd)
}

func doRun(cmd *cobra.Command, args []string) error {
	dash := cmd.ArgsLenAtDash()
	var toolName string
	var programArgs []string
	switch {
	case dash < 0:
		programArgs = nil
		if len(args) > 0 {
			toolName = args[0]
		}
	default:
		if dash > 0 {
			toolName = args[0]
		}
		programArgs = args[dash:]
	}

	cfg, g, err := loadAndPlan(nil)
	if err != nil {
		return err
	}

	tc := toolchain.New(cfg.ToolchainFamily, cfg.Compiler)
	if err := executor.New(cfg, tc).Execute(g); err != nil {
		return err
	}

	node := findTool(g, toolName)
	if node == nil {
		msg.Fatal("no executable tool found to run")
		return nil
	}

	c := exec.Command(node.OutputPath, programArgs...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	c.Stdin = os.Stdin
	return c.Run()
}

// findTool locates the executable to run: if name is given, the executable
// whose id is "tool:<name>" or "directive:<name>" or whose output path equals
// name; otherwise the first executable in build order.
func findTool(g *graph.Graph, name string) *graph.Node {
	if name != "" {
		for _, id := range g.Order {
			n := g.Nodes[id]
			if n.Kind == graph.Executable && (id == "tool:"+name || id == "directive:"+name || n.OutputPath == name) {
				return n
			}
		}
		return nil
	}
	for _, id := range g.Order {
		n := g.Nodes[id]
		if n.Kind == graph.Executable {
			return n
		}
	}
	return nil
}
