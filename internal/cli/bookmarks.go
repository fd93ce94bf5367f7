package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/mdview/internal/bookmarks"
)

func newBookmarksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmarks",
		Aliases: []string{"bm"},
		Short:   "Manage bookmarked documents",
	}
	cmd.AddCommand(newBookmarksListCmd())
	cmd.AddCommand(newBookmarksAddCmd())
	cmd.AddCommand(newBookmarksRemoveCmd())
	return cmd
}

func openStore(cmd *cobra.Command) (*bookmarks.Store, error) {
	return bookmarks.Open(getEnv(cmd).settings.BookmarksFile)
}

func newBookmarksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bookmarks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, b := range store.List() {
				_, _ = fmt.Fprintf(out, "%s  %s\n", b.AddedAt.Local().Format("2006-01-02 15:04"), b.Path)
			}
			return nil
		},
	}
}

func newBookmarksAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add FILE...",
		Short: "Bookmark one or more documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			for _, path := range args {
				b, err := store.Add(path)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bookmarked %s\n", b.Path)
			}
			return nil
		},
	}
}

func newBookmarksRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove FILE...",
		Aliases: []string{"rm"},
		Short:   "Remove bookmarks",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			for _, path := range args {
				if err := store.Remove(path); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			return nil
		},
	}
}
