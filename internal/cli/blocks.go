package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/mdview/internal/markdown"
)

// jsonBlock tags a block with its kind so the sequence can be decoded.
type jsonBlock struct {
	Type  string         `json:"type"`
	Block markdown.Block `json:"block,omitempty"`
}

func newBlocksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blocks FILE",
		Short: "Print the parsed block sequence of FILE as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, blocks, err := parseArg(cmd, args[0])
			if err != nil {
				return err
			}
			out := make([]jsonBlock, 0, len(blocks))
			for _, b := range blocks {
				out = append(out, jsonBlock{Type: b.Kind().String(), Block: b})
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}
