package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/l3aro/go-flowchart/internal/config"
	"github.com/l3aro/go-flowchart/pkg/flowgraph"
	"github.com/l3aro/go-flowchart/pkg/parser"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a flowchart to SVG or PNG",
	Long: `Renders a flowchart image from a Python source file or an existing
Graphviz .dot file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		imageFormat, _ := cmd.Flags().GetString("format")
		switch imageFormat {
		case "svg", "png":
		default:
			return fmt.Errorf("unknown image format %q (use svg or png)", imageFormat)
		}

		var dot string
		switch {
		case strings.HasSuffix(filePath, ".dot"):
			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("reading %s: %w", filePath, err)
			}
			dot = string(data)
		case isPythonFile(filePath):
			mod, err := parser.ParseFile(cmd.Context(), filePath)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", filePath, err)
			}
			wrapColumn := cfg.WrapColumn
			if cmd.Flags().Changed("wrap-column") {
				wrapColumn, _ = cmd.Flags().GetInt("wrap-column")
			}
			rankDir := cfg.RankDir
			if cmd.Flags().Changed("rank-dir") {
				rankDir, _ = cmd.Flags().GetString("rank-dir")
			}
			dot = flowgraph.ToDOT(flowgraph.Build(mod), flowgraph.Options{
				WrapColumn: wrapColumn,
				RankDir:    rankDir,
			})
		default:
			return fmt.Errorf("unsupported file type: %s (expected .py or .dot)", filePath)
		}

		if dot == "" {
			return fmt.Errorf("nothing to render: %s produced an empty flowchart", filePath)
		}

		var img []byte
		if imageFormat == "png" {
			img, err = flowgraph.RenderPNG(cmd.Context(), dot)
		} else {
			img, err = flowgraph.RenderSVG(cmd.Context(), dot)
		}
		if err != nil {
			return fmt.Errorf("rendering %s: %w", imageFormat, err)
		}

		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			outPath = strings.TrimSuffix(filePath, filepath.Ext(filePath)) + "." + imageFormat
		}
		if err := os.WriteFile(outPath, img, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		fmt.Printf("Rendered %s to %s\n", filePath, outPath)
		return nil
	},
}

func init() {
	renderCmd.Flags().String("format", "svg", "Image format: svg or png")
	renderCmd.Flags().StringP("out", "o", "", "Output path (default: input name with image extension)")
	renderCmd.Flags().Int("wrap-column", flowgraph.DefaultWrapColumn, "Word-wrap width for node labels")
	renderCmd.Flags().String("rank-dir", "", "Graphviz layout direction: TB, LR, BT, or RL")
	RootCmd.AddCommand(renderCmd)
}
