package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-glaze/glaze/cmd/glaze/internal/config"
)

var freezeCmd = &cobra.Command{
	Use:   "freeze",
	Short: "Freeze the project into a static site",
	Long: `Freeze every page of the project into a static site.

Pages whose content is unchanged since the last freeze reuse the
cached compiler output instead of invoking the minifier again.
Settings come from glaze.yaml; flags override them.`,
	Args: cobra.NoArgs,
	RunE: runFreeze,
}

func init() {
	rootCmd.AddCommand(freezeCmd)
	freezeCmd.Flags().String("out", "", "output directory (overrides glaze.yaml)")
	freezeCmd.Flags().Bool("no-cache", false, "ignore the page cache and recompile everything")
}

func runFreeze(cmd *cobra.Command, args []string) error {
	root, err := config.FindProjectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = cfg.OutDir
	}
	noCache, _ := cmd.Flags().GetBool("no-cache")

	childArgs := []string{"run", ".", "freeze", "-out", out}
	if !noCache && cfg.CachePath != "" {
		childArgs = append(childArgs, "-cache", cfg.CachePath)
	}
	if cfg.Compiler != "" {
		childArgs = append(childArgs, "-compiler", cfg.Compiler)
	}

	step("Freezing %s into %s", cfg.SiteName, out)
	if verbose {
		step("  go %s", strings.Join(childArgs, " "))
	}
	child := exec.Command("go", childArgs...)
	child.Dir = root
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr
	if err := child.Run(); err != nil {
		return fmt.Errorf("freeze failed: %w", err)
	}
	success("Site frozen: %s", out)
	return nil
}
