package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/go-glaze/glaze/cmd/glaze/internal/config"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove build output and the page cache",
	Long: `Remove the project's build output directory and the frozen-page
cache. The next freeze recompiles every page.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	root, err := config.FindProjectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return err
	}

	for _, rel := range []string{cfg.OutDir, cfg.CachePath} {
		if rel == "" {
			continue
		}
		target := rel
		if !filepath.IsAbs(target) {
			target = filepath.Join(root, target)
		}
		if _, err := os.Stat(target); err != nil {
			continue
		}
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("failed to remove %s: %w", target, err)
		}
		step("Removed %s", target)
	}
	return nil
}
