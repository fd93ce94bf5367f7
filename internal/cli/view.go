package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/mdview/internal/app"
	"github.com/kk-code-lab/mdview/internal/bookmarks"
)

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [FILE]",
		Short: "Open FILE in the viewer (the latest bookmark when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runView(cmd, path)
		},
	}
}

func runView(cmd *cobra.Command, path string) error {
	e := getEnv(cmd)

	store, err := bookmarks.Open(e.settings.BookmarksFile)
	if err != nil {
		// The viewer still works without bookmarks.
		e.log.Warning("bookmarks unavailable: %v", err)
		store = nil
	}

	if path == "" {
		if store == nil {
			return errors.New("no file given")
		}
		latest, err := store.Latest()
		if errors.Is(err, bookmarks.ErrNotFound) {
			return errors.New("no file given and no bookmarks saved")
		}
		if err != nil {
			return err
		}
		path = latest.Path
	}
	if path == "-" {
		return errors.New("the viewer needs a file; use cat to read stdin")
	}

	viewer, err := app.NewApplication(app.Config{
		Path:      path,
		Settings:  e.settings,
		Bookmarks: store,
		Logger:    e.log,
	})
	if err != nil {
		return fmt.Errorf("open viewer: %w", err)
	}
	return viewer.Run(cmd.Context())
}
