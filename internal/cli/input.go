package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kk-code-lab/mdview/internal/document"
	"github.com/kk-code-lab/mdview/internal/markdown"
)

const defaultOutputWidth = 80

// readDocument loads arg, or standard input when arg is "-".
func readDocument(cmd *cobra.Command, arg string) (document.Document, error) {
	if arg != "-" {
		return document.Load(arg)
	}
	data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), document.MaxBytes+1))
	if err != nil {
		return document.Document{}, fmt.Errorf("read stdin: %w", err)
	}
	if int64(len(data)) > document.MaxBytes {
		return document.Document{}, fmt.Errorf("stdin: %w", document.ErrTooLarge)
	}
	return document.FromBytes("-", data)
}

func parseArg(cmd *cobra.Command, arg string) (document.Document, []markdown.Block, error) {
	doc, err := readDocument(cmd, arg)
	if err != nil {
		return document.Document{}, nil, err
	}
	getEnv(cmd).log.Info("parsed %s (%s)", doc.Path, doc.Digest)
	return doc, markdown.Parse(doc.Text), nil
}

// outputWidth is the terminal width when w is a terminal.
func outputWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultOutputWidth
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return defaultOutputWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultOutputWidth
	}
	return width
}
