// Package commands provides the CLI commands for the go-flowchart tool.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/l3aro/go-flowchart/internal/log"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "gfc",
	Short: "go-flowchart - Python flowchart generation and complexity analysis",
	Long: `go-flowchart turns Python source files into flowcharts and complexity reports.

Commands:
  flowchart   Generate a flowchart for a Python file
  analyze     Report cyclomatic complexity for a file or directory
  render      Render a flowchart to SVG or PNG
  init        Initialize gfc configuration interactively

Use "gfc [command] --help" for more information about a command.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.Default().SetLevel(log.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}
