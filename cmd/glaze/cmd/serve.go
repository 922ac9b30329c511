package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-glaze/glaze/cmd/glaze/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the project's dev server",
	Long: `Run the project's dev server.

The server renders pages live on every request and reloads connected
browsers when watched source files change. Settings come from
glaze.yaml; flags override them.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (overrides glaze.yaml)")
	serveCmd.Flags().Bool("no-watch", false, "disable source watching and live reload")
}

func runServe(cmd *cobra.Command, args []string) error {
	root, err := config.FindProjectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.Addr
	}
	noWatch, _ := cmd.Flags().GetBool("no-watch")

	childArgs := []string{"run", ".", "serve", "-addr", addr}
	if !noWatch {
		childArgs = append(childArgs, "-watch", cfg.WatchDir)
	}

	step("Serving %s on http://%s", cfg.SiteName, addr)
	if verbose {
		step("  go %s", strings.Join(childArgs, " "))
	}
	child := exec.Command("go", childArgs...)
	child.Dir = root
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr
	if err := child.Run(); err != nil {
		return fmt.Errorf("dev server exited: %w", err)
	}
	return nil
}
