package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/l3aro/go-flowchart/internal/config"
	"github.com/l3aro/go-flowchart/pkg/flowgraph"
	"github.com/l3aro/go-flowchart/pkg/parser"
	"github.com/l3aro/go-flowchart/pkg/pytree"
)

// flowchartCmd represents the flowchart command
var flowchartCmd = &cobra.Command{
	Use:   "flowchart <file>",
	Short: "Generate a flowchart for a Python file",
	Long: `Parses a Python file and generates its flowchart.
Output formats: text (node/edge listing), json, or dot (Graphviz).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]

		info, err := os.Stat(filePath)
		if err != nil {
			return fmt.Errorf("stat file: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("path is a directory, expected a file: %s", filePath)
		}
		if !isPythonFile(filePath) {
			return fmt.Errorf("unsupported file type: %s (only .py files supported)", filePath)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		format := cfg.Format
		if cmd.Flags().Changed("format") {
			format, _ = cmd.Flags().GetString("format")
		}
		wrapColumn := cfg.WrapColumn
		if cmd.Flags().Changed("wrap-column") {
			wrapColumn, _ = cmd.Flags().GetInt("wrap-column")
		}
		rankDir := cfg.RankDir
		if cmd.Flags().Changed("rank-dir") {
			rankDir, _ = cmd.Flags().GetString("rank-dir")
		}

		mod, err := parser.ParseFile(cmd.Context(), filePath)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", filePath, err)
		}

		if functionName, _ := cmd.Flags().GetString("function"); functionName != "" {
			mod, err = selectFunction(mod, functionName, filePath)
			if err != nil {
				return err
			}
		}

		g := flowgraph.Build(mod)

		var output string
		switch format {
		case config.FormatText:
			output = formatGraphText(filePath, g)
		case config.FormatJSON:
			data, err := marshalGraph(filePath, g)
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			output = string(data) + "\n"
		case config.FormatDOT:
			output = flowgraph.ToDOT(g, flowgraph.Options{
				WrapColumn: wrapColumn,
				RankDir:    rankDir,
			})
		default:
			return fmt.Errorf("unknown format %q (use text, json, or dot)", format)
		}

		outPath, _ := cmd.Flags().GetString("out")
		if outPath != "" {
			if err := os.WriteFile(outPath, []byte(output), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			fmt.Printf("Flowchart written to %s\n", outPath)
			return nil
		}

		fmt.Print(output)
		return nil
	},
}

// isPythonFile checks if the file has a Python extension.
func isPythonFile(filePath string) bool {
	return strings.HasSuffix(filePath, ".py") || strings.HasSuffix(filePath, ".pyw")
}

// selectFunction narrows the module down to a single top-level function.
func selectFunction(mod pytree.Module, name, filePath string) (pytree.Module, error) {
	var available []string
	for _, s := range mod.Body {
		if s.Kind != pytree.KindFunctionDef {
			continue
		}
		if s.Name == name {
			return pytree.Module{Body: []pytree.Statement{s}}, nil
		}
		available = append(available, s.Name)
	}

	if suggestion := closestName(name, available); suggestion != "" {
		return pytree.Module{}, fmt.Errorf("function %q not found in %s\nDid you mean: %s?", name, filePath, suggestion)
	}
	return pytree.Module{}, fmt.Errorf("function %q not found in %s", name, filePath)
}

// closestName picks a candidate sharing a prefix or substring with name.
func closestName(name string, candidates []string) string {
	lower := strings.ToLower(name)
	for _, c := range candidates {
		cl := strings.ToLower(c)
		if strings.Contains(cl, lower) || strings.Contains(lower, cl) {
			return c
		}
	}
	return ""
}

// formatGraphText renders the graph in a human-readable node/edge listing.
func formatGraphText(filePath string, g *flowgraph.Graph) string {
	m := flowgraph.Measure(g)

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Flowchart for %s ===\n", filePath)
	fmt.Fprintf(&sb, "Cyclomatic Complexity: %d (%s)\n", m.Cyclomatic, m.Risk)
	fmt.Fprintf(&sb, "Decision Complexity: %d\n", m.DecisionBased)

	fmt.Fprintf(&sb, "\nNodes (%d):\n", m.Nodes)
	for _, n := range g.Nodes() {
		fmt.Fprintf(&sb, "  %d [%s] %s\n", n.ID, n.Kind, n.Label)
	}

	fmt.Fprintf(&sb, "\nEdges (%d):\n", m.Edges)
	for _, n := range g.Nodes() {
		for _, e := range n.Succs {
			if e.Label != "" {
				fmt.Fprintf(&sb, "  %d --%s--> %d\n", n.ID, e.Label, e.To)
			} else {
				fmt.Fprintf(&sb, "  %d --> %d\n", n.ID, e.To)
			}
		}
	}

	return sb.String()
}

type graphNodeJSON struct {
	ID    int            `json:"id"`
	Label string         `json:"label"`
	Kind  flowgraph.Kind `json:"kind"`
}

type graphEdgeJSON struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Label string `json:"label,omitempty"`
}

type graphJSON struct {
	File    string            `json:"file"`
	Metrics flowgraph.Metrics `json:"metrics"`
	Nodes   []graphNodeJSON   `json:"nodes"`
	Edges   []graphEdgeJSON   `json:"edges"`
}

// marshalGraph serializes the graph and its metrics as indented JSON.
func marshalGraph(filePath string, g *flowgraph.Graph) ([]byte, error) {
	out := graphJSON{
		File:    filePath,
		Metrics: flowgraph.Measure(g),
		Nodes:   []graphNodeJSON{},
		Edges:   []graphEdgeJSON{},
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, graphNodeJSON{ID: n.ID, Label: n.Label, Kind: n.Kind})
		for _, e := range n.Succs {
			out.Edges = append(out.Edges, graphEdgeJSON{From: n.ID, To: e.To, Label: e.Label})
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

func init() {
	flowchartCmd.Flags().StringP("function", "f", "", "Generate the flowchart for a single top-level function")
	flowchartCmd.Flags().String("format", "", "Output format: text, json, or dot (default from config)")
	flowchartCmd.Flags().StringP("out", "o", "", "Write output to a file instead of stdout")
	flowchartCmd.Flags().Int("wrap-column", flowgraph.DefaultWrapColumn, "Word-wrap width for DOT node labels")
	flowchartCmd.Flags().String("rank-dir", "", "Graphviz layout direction: TB, LR, BT, or RL")
	RootCmd.AddCommand(flowchartCmd)
}
