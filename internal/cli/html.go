package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/mdview/internal/htmldoc"
)

func newHTMLCmd() *cobra.Command {
	var out string
	var title string
	var noHighlight bool
	cmd := &cobra.Command{
		Use:   "html FILE",
		Short: "Export FILE as a standalone HTML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := getEnv(cmd)
			_, blocks, err := parseArg(cmd, args[0])
			if err != nil {
				return err
			}
			page, err := htmldoc.Render(blocks, htmldoc.Options{
				Title:          title,
				Highlight:      e.settings.HTML.Highlight && !noHighlight,
				Style:          e.settings.HTML.Style,
				InlineMarkdown: e.settings.HTML.InlineMarkdown,
			})
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = io.WriteString(cmd.OutOrStdout(), page)
				return err
			}
			if err := os.WriteFile(out, []byte(page), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			e.log.Info("wrote %s (%d bytes)", out, len(page))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&title, "title", "", "document title (default: first heading)")
	cmd.Flags().BoolVar(&noHighlight, "no-highlight", false, "disable syntax highlighting")
	return cmd
}
