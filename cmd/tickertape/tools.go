package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/tickertape/internal/presentation/tui"
	"github.com/aretw0/tickertape/pkg/registry"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the registered tools and prompts",
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp(cmd)
		defer app.Close()

		raw, _ := cmd.Flags().GetBool("raw")
		if err := printCatalog(cmd.OutOrStdout(), app.Registry, !raw && tui.IsTerminal(os.Stdout)); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering catalog: %v\n", err)
			os.Exit(1)
		}
	},
}

// printCatalog writes the catalog as markdown, rendered with glamour when pretty is set.
func printCatalog(w io.Writer, reg *registry.Registry, pretty bool) error {
	md := tui.CatalogMarkdown(reg.Tools(), reg.Prompts())
	if !pretty {
		_, err := io.WriteString(w, md)
		return err
	}

	render, err := tui.NewRenderer()
	if err != nil {
		return err
	}
	out, err := render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.Flags().Bool("raw", false, "Print plain markdown even on a terminal")
}
