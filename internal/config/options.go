package config

import (
	"os"
	"path/filepath"
	"time"
)

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "log_file", Default: "", Comment: "Append diagnostics to this file; empty disables logging"},
		{Key: "bookmarks.file", Default: defaultBookmarksPath(), Comment: "JSON file holding bookmarked documents"},

		{Key: "view.wrap", Default: true, Comment: "Word-wrap prose and clamp tables to the terminal width"},
		{Key: "view.tab_width", Default: 4, Comment: "Columns per tab stop in code blocks and table cells"},
		{Key: "view.table_max_lines_per_cell", Default: 0, Comment: "Limit wrapped lines per table cell (0 = unlimited)"},

		{Key: "watch.enabled", Default: true, Comment: "Reload the document when it changes on disk"},
		{Key: "watch.debounce", Default: 150 * time.Millisecond, Comment: "Quiet period before a change is reloaded"},

		{Key: "html.highlight", Default: true, Comment: "Syntax-highlight fenced code in HTML export"},
		{Key: "html.style", Default: "github", Comment: "Highlighting style name for HTML export"},
		{Key: "html.inline_markdown", Default: true, Comment: "Render emphasis and links in HTML export"},

		{Key: "commands.editor", Default: "", Comment: "Editor command line for the e key; empty uses $VISUAL, $EDITOR, then a platform default"},
		{Key: "commands.clipboard", Default: "", Comment: "Command receiving the yanked path on stdin; empty autodetects"},
	}
}

// defaultDataDir resolves $XDG_DATA_HOME/mdview or ~/.local/share/mdview.
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "mdview")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "mdview")
}

func defaultBookmarksPath() string {
	return filepath.Join(defaultDataDir(), "bookmarks.json")
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "mdview", "config.toml")
}
