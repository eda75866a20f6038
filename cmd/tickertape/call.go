package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/tickertape/pkg/dispatch"
	"github.com/aretw0/tickertape/pkg/domain"
	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call <tool> [key=value...]",
	Short: "Invoke one tool and print its reply",
	Long: `Runs a single invocation through the dispatcher, exactly as an MCP client would.
Values are converted to the declared parameter type (numbers and booleans).

Example:
  tickertape call stock_info stock_ticker=IBM`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := mustApp(cmd)
		defer app.Close()

		if err := runCall(cmd.Context(), app.Dispatcher, cmd.OutOrStdout(), args[0], args[1:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			app.Close()
			os.Exit(1)
		}
	},
}

// runCall invokes tool and writes the reply to w. A failed invocation is returned as the error.
func runCall(ctx context.Context, d *dispatch.Dispatcher, w io.Writer, tool string, pairs []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var params []domain.Parameter
	if entry, err := d.Registry().Lookup(tool); err == nil {
		params = entry.Spec.Parameters
	}
	args, err := parseArgs(params, pairs)
	if err != nil {
		return err
	}

	res := d.Handle(ctx, domain.InvocationRequest{ToolName: tool, Arguments: args})
	if !res.OK() {
		return res.Failure
	}
	_, err = fmt.Fprintln(w, res.Text)
	return err
}

// parseArgs turns key=value pairs into arguments typed after params.
// Values that do not parse keep their string form so validation can report them.
func parseArgs(params []domain.Parameter, pairs []string) (map[string]any, error) {
	types := make(map[string]domain.ParamType, len(params))
	for _, p := range params {
		types[p.Name] = p.Type
	}

	args := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q: expected key=value", pair)
		}

		var v any = raw
		switch types[key] {
		case domain.ParamInt, domain.ParamFloat:
			if f, err := strconv.ParseFloat(raw, 64); err == nil {
				v = f
			}
		case domain.ParamBool:
			if b, err := strconv.ParseBool(raw); err == nil {
				v = b
			}
		}
		args[key] = v
	}
	return args, nil
}

func init() {
	rootCmd.AddCommand(callCmd)
}
