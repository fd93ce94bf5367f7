package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/spf13/viper"
)

const maxTabWidth = 16

// Settings is the typed view of a loaded configuration.
type Settings struct {
	LogFile       string
	BookmarksFile string
	View          ViewSettings
	Watch         WatchSettings
	HTML          HTMLSettings
	Commands      CommandSettings
}

type ViewSettings struct {
	Wrap                 bool
	TabWidth             int
	TableMaxLinesPerCell int
}

type WatchSettings struct {
	Enabled  bool
	Debounce time.Duration
}

type HTMLSettings struct {
	Highlight      bool
	Style          string
	InlineMarkdown bool
}

// CommandSettings override the external helper programs. Empty values
// fall back to platform detection.
type CommandSettings struct {
	Editor    string
	Clipboard string
}

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// A missing config file is not an error; a malformed one is.
func Load(ctx context.Context, v *viper.Viper) error {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "mdview"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "mdview"))
		}
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// Environment variables: MDVIEW_* (e.g. MDVIEW_VIEW_WRAP)
	v.SetEnvPrefix("mdview")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if dir := v.GetString("bookmarks.file"); strings.HasPrefix(dir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			v.Set("bookmarks.file", filepath.Join(home, dir[1:]))
		}
	}
	return nil
}

// FromViper validates v and converts it into Settings.
func FromViper(v *viper.Viper) (Settings, error) {
	if err := CheckConfigValidity(v); err != nil {
		return Settings{}, err
	}
	return Settings{
		LogFile:       v.GetString("log_file"),
		BookmarksFile: v.GetString("bookmarks.file"),
		View: ViewSettings{
			Wrap:                 v.GetBool("view.wrap"),
			TabWidth:             v.GetInt("view.tab_width"),
			TableMaxLinesPerCell: v.GetInt("view.table_max_lines_per_cell"),
		},
		Watch: WatchSettings{
			Enabled:  v.GetBool("watch.enabled"),
			Debounce: v.GetDuration("watch.debounce"),
		},
		HTML: HTMLSettings{
			Highlight:      v.GetBool("html.highlight"),
			Style:          v.GetString("html.style"),
			InlineMarkdown: v.GetBool("html.inline_markdown"),
		},
		Commands: CommandSettings{
			Editor:    v.GetString("commands.editor"),
			Clipboard: v.GetString("commands.clipboard"),
		},
	}, nil
}

// CheckConfigValidity reports every invalid value at once.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error

	if strings.TrimSpace(v.GetString("bookmarks.file")) == "" {
		errs = append(errs, errors.New("bookmarks.file is required"))
	}
	if tw := v.GetInt("view.tab_width"); tw < 1 || tw > maxTabWidth {
		errs = append(errs, fmt.Errorf("view.tab_width must be between 1 and %d", maxTabWidth))
	}
	if v.GetInt("view.table_max_lines_per_cell") < 0 {
		errs = append(errs, errors.New("view.table_max_lines_per_cell must not be negative"))
	}
	if v.GetDuration("watch.debounce") < 0 {
		errs = append(errs, errors.New("watch.debounce must not be negative"))
	}
	if name := v.GetString("html.style"); name == "" {
		errs = append(errs, errors.New("html.style is required"))
	} else if _, ok := styles.Registry[strings.ToLower(name)]; !ok {
		errs = append(errs, fmt.Errorf("html.style %q is not a known style", name))
	}

	return errors.Join(errs...)
}
