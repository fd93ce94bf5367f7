package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/mdview/internal/layout"
)

func newCatCmd() *cobra.Command {
	var width int
	var noWrap bool
	cmd := &cobra.Command{
		Use:   "cat FILE",
		Short: "Print FILE laid out as plain text (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view := getEnv(cmd).settings.View
			_, blocks, err := parseArg(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if width <= 0 {
				width = outputWidth(out)
			}
			text := layout.PlainText(blocks, layout.Options{
				Width:                width,
				Wrap:                 view.Wrap && !noWrap,
				TabWidth:             view.TabWidth,
				TableMaxLinesPerCell: view.TableMaxLinesPerCell,
			})
			_, err = io.WriteString(out, text)
			return err
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 0, "layout width (default: terminal width or 80)")
	cmd.Flags().BoolVar(&noWrap, "no-wrap", false, "do not wrap prose or clamp tables")
	return cmd
}
