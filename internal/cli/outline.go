package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/mdview/internal/outline"
)

func newOutlineCmd() *cobra.Command {
	var match string
	cmd := &cobra.Command{
		Use:   "outline FILE",
		Short: "List the headings of FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, blocks, err := parseArg(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range outline.Match(outline.Build(blocks), match) {
				_, _ = fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", e.Level-1), e.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&match, "match", "m", "", "fuzzy filter on heading text")
	return cmd
}
