package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/tickertape/pkg/registry"
	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt <name> [argument]",
	Short: "Render a prompt template",
	Long: `Prints a prompt with its single argument interpolated.
The argument is read from stdin when omitted or "-".

Example:
  tickertape call get_last_price stock_name=AAPL | tickertape prompt stock_summary`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp(cmd)
		defer app.Close()

		var data string
		if len(args) == 2 && args[1] != "-" {
			data = args[1]
		} else {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
				os.Exit(1)
			}
			data = string(b)
		}

		if err := runPrompt(cmd.OutOrStdout(), app.Registry, args[0], data); err != nil {
			fmt.Fprintln(os.Stderr, err)
			app.Close()
			os.Exit(1)
		}
	},
}

// runPrompt renders prompt name with data bound to its first argument.
func runPrompt(w io.Writer, reg *registry.Registry, name, data string) error {
	spec, err := reg.LookupPrompt(name)
	if err != nil {
		return err
	}

	args := map[string]string{}
	if len(spec.Arguments) > 0 {
		args[spec.Arguments[0].Name] = data
	}
	text, err := spec.Render(args)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}

func init() {
	rootCmd.AddCommand(promptCmd)
}
