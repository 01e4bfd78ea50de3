package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/l3aro/go-flowchart/internal/config"
	"github.com/l3aro/go-flowchart/internal/log"
	"github.com/l3aro/go-flowchart/internal/scanner"
	"github.com/l3aro/go-flowchart/pkg/cache"
	"github.com/l3aro/go-flowchart/pkg/flowgraph"
	"github.com/l3aro/go-flowchart/pkg/parser"
)

const cacheFileName = "analysis.msgpack"

// fileReport holds the analysis result for one Python file.
type fileReport struct {
	Path    string            `json:"path"`
	Metrics flowgraph.Metrics `json:"metrics"`
	Error   string            `json:"error,omitempty"`
}

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Report cyclomatic complexity for a file or directory",
	Long: `Analyzes Python files and reports cyclomatic complexity with a risk rating.
When given a directory, every Python file under it is analyzed (respecting
.gfcignore). Results are cached per content hash so unchanged files are
not re-parsed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := "."
		if len(args) > 0 {
			target = args[0]
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		useCache := cfg.CacheEnabled
		if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
			useCache = false
		}

		info, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf("stat path: %w", err)
		}

		var reports []fileReport
		if info.IsDir() {
			reports, err = analyzeDir(cmd.Context(), cfg, target, useCache)
		} else {
			if !isPythonFile(target) {
				return fmt.Errorf("unsupported file type: %s (only .py files supported)", target)
			}
			reports = []fileReport{analyzeFile(cmd.Context(), target)}
		}
		if err != nil {
			return err
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			data, err := json.MarshalIndent(reports, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		printReports(reports)
		return nil
	},
}

// analyzeDir walks the directory and analyzes every Python file found.
func analyzeDir(ctx context.Context, cfg *config.Config, root string, useCache bool) ([]fileReport, error) {
	files, err := scanner.Scan(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	store := cache.New(cache.Options{MaxEntries: 4096})
	cachePath := filepath.Join(cfg.CacheDir, cacheFileName)
	if useCache {
		if err := store.LoadFile(cachePath); err != nil && !errors.Is(err, cache.ErrNoCacheFile) {
			log.Default().Warn("cache load failed, starting fresh", "path", cachePath, "error", err)
		}
	}

	spinner := log.NewProgressSpinner(fmt.Sprintf("Analyzing %d files...", len(files)))
	spinner.Start()

	var reports []fileReport
	for i, f := range files {
		spinner.Message(fmt.Sprintf("Analyzing %s (%d/%d)", f.Path, i+1, len(files)))

		content, err := os.ReadFile(f.FullPath)
		if err != nil {
			reports = append(reports, fileReport{Path: f.Path, Error: err.Error()})
			continue
		}

		key := cache.HashBytes(content)
		if useCache {
			if hit, ok := store.Get(key); ok {
				reports = append(reports, fileReport{Path: f.Path, Metrics: hit.Metrics})
				continue
			}
		}

		mod, err := parser.Parse(ctx, content)
		if err != nil {
			reports = append(reports, fileReport{Path: f.Path, Error: err.Error()})
			continue
		}

		g := flowgraph.Build(mod)
		metrics := flowgraph.Measure(g)
		reports = append(reports, fileReport{Path: f.Path, Metrics: metrics})

		if useCache {
			store.Set(key, cache.Analysis{
				Path:    f.Path,
				Metrics: metrics,
				DOT:     flowgraph.ToDOT(g, flowgraph.Options{WrapColumn: cfg.WrapColumn, RankDir: cfg.RankDir}),
			})
		}
	}

	spinner.Stop()

	if useCache {
		if err := store.SaveFile(cachePath); err != nil {
			log.Default().Warn("cache save failed", "path", cachePath, "error", err)
		}
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Path < reports[j].Path })
	return reports, nil
}

// analyzeFile parses and measures a single Python file.
func analyzeFile(ctx context.Context, path string) fileReport {
	mod, err := parser.ParseFile(ctx, path)
	if err != nil {
		return fileReport{Path: path, Error: err.Error()}
	}
	return fileReport{
		Path:    path,
		Metrics: flowgraph.Measure(flowgraph.Build(mod)),
	}
}

// printReports prints per-file metrics followed by a summary.
func printReports(reports []fileReport) {
	failed := 0
	worst := 0
	for _, r := range reports {
		if r.Error != "" {
			fmt.Printf("%-50s  error: %s\n", r.Path, r.Error)
			failed++
			continue
		}
		fmt.Printf("%-50s  complexity=%-3d %s\n", r.Path, r.Metrics.Cyclomatic, r.Metrics.Risk)
		if r.Metrics.Cyclomatic > worst {
			worst = r.Metrics.Cyclomatic
		}
	}

	fmt.Printf("\n%d files analyzed", len(reports)-failed)
	if failed > 0 {
		fmt.Printf(", %d failed", failed)
	}
	if len(reports) > failed {
		fmt.Printf(", highest complexity %d (%s)", worst, flowgraph.RateRisk(worst))
	}
	fmt.Println()
}

func init() {
	analyzeCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	analyzeCmd.Flags().Bool("no-cache", false, "Bypass the analysis cache")
	RootCmd.AddCommand(analyzeCmd)
}
