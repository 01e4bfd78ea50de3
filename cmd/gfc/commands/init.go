package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/l3aro/go-flowchart/internal/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gfc configuration interactively",
	Long: `Guides you through setting up gfc configuration step by step.
Creates a config file with output format, layout, and cache settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

func runInit() error {
	// === SECTION 1: Output ===
	var format string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output Format - Default format for the flowchart command").
				Options(
					huh.NewOption("Text (node/edge listing)", config.FormatText),
					huh.NewOption("JSON", config.FormatJSON),
					huh.NewOption("DOT (Graphviz)", config.FormatDOT),
				).
				Value(&format),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	wrapColumnStr := "30"
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Label wrap column").
				Description("Node labels in DOT output are word-wrapped at this width").
				Placeholder("30").
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n <= 0 {
						return fmt.Errorf("enter a positive number")
					}
					return nil
				}).
				Value(&wrapColumnStr),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}
	wrapColumn, _ := strconv.Atoi(wrapColumnStr)

	var rankDir string
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Layout direction").
				Description("Direction Graphviz lays out the flowchart").
				Options(
					huh.NewOption("Top to bottom", "TB"),
					huh.NewOption("Left to right", "LR"),
					huh.NewOption("Bottom to top", "BT"),
					huh.NewOption("Right to left", "RL"),
				).
				Value(&rankDir),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	// === SECTION 2: Cache ===
	cacheEnabled := true
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Analysis Cache").
				Description("Cache per-file analysis so unchanged files are not re-parsed?").
				Affirmative("Enable").
				Negative("Disable").
				Value(&cacheEnabled),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	cacheDir := ".gfc/cache"
	if cacheEnabled {
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Cache directory").
					Placeholder(".gfc/cache").
					Value(&cacheDir),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive prompt failed: %w", err)
		}
	}

	// === SECTION 3: Config Location ===
	var saveLocationChoice string
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Save Configuration").
				Description("Where to save the configuration file?").
				Options(
					huh.NewOption("Global (~/.gfc/config.yaml)", "global"),
					huh.NewOption("Project (./.gfc/config.yaml)", "project"),
				).
				Value(&saveLocationChoice),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	var configPath string
	if saveLocationChoice == "global" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("getting home directory: %w", err)
		}
		configPath = filepath.Join(home, ".gfc", "config.yaml")
	} else {
		configPath = config.ProjectConfigFilePath()
	}

	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Config file exists").
					Description(fmt.Sprintf("Overwrite existing config at %s?", configPath)).
					Affirmative("Overwrite").
					Negative("Cancel").
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive prompt failed: %w", err)
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	// === Build config struct ===
	cfg := config.DefaultConfig()
	cfg.Format = format
	cfg.WrapColumn = wrapColumn
	cfg.RankDir = rankDir
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheDir = cacheDir

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	fmt.Println("\n=== Configuration Preview ===")
	fmt.Printf("Config path: %s\n", configPath)
	fmt.Printf("Format: %s\n", cfg.Format)
	fmt.Printf("Wrap Column: %d\n", cfg.WrapColumn)
	fmt.Printf("Rank Dir: %s\n", cfg.RankDir)
	if cfg.CacheEnabled {
		fmt.Printf("Cache: enabled (%s)\n", cfg.CacheDir)
	} else {
		fmt.Println("Cache: disabled")
	}
	fmt.Println("================================")

	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("Configuration saved to: %s\n", configPath)

	return nil
}

func init() {
	RootCmd.AddCommand(initCmd)
}
