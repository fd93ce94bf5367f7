package app

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// commandLookup resolves external helper programs for the current platform.
type commandLookup struct {
	goos     string
	getenv   func(string) string
	lookPath func(string) (string, error)
}

func systemLookup() commandLookup {
	return commandLookup{goos: runtime.GOOS, getenv: os.Getenv, lookPath: exec.LookPath}
}

func (l commandLookup) windows() bool {
	return strings.EqualFold(l.goos, "windows")
}

// resolve turns a command line into argv with an absolute program path.
func (l commandLookup) resolve(line []string) ([]string, bool) {
	if len(line) == 0 || line[0] == "" {
		return nil, false
	}
	path, err := l.lookPath(expandUserPath(line[0]))
	if err != nil || path == "" {
		return nil, false
	}
	return append([]string{path}, line[1:]...), true
}

func (l commandLookup) first(candidates [][]string) ([]string, bool) {
	for _, c := range candidates {
		if argv, ok := l.resolve(c); ok {
			return argv, true
		}
	}
	return nil, false
}

// clipboard picks the program that receives the yanked path on stdin.
// A configured override wins; a configured command that cannot be found
// disables the clipboard instead of silently falling back.
func (l commandLookup) clipboard(override string) ([]string, bool) {
	if strings.TrimSpace(override) != "" {
		return l.resolve(splitCommandLine(override))
	}
	var candidates [][]string
	if l.windows() {
		candidates = append(candidates, []string{"clip.exe"}, []string{"clip"})
		for _, ps := range []string{"powershell", "powershell.exe", "pwsh"} {
			candidates = append(candidates, []string{ps, "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"})
		}
	}
	for _, name := range []string{"pbcopy", "xclip", "wl-copy", "xsel"} {
		candidates = append(candidates, []string{name})
	}
	return l.first(candidates)
}

// editor picks the program used by the open-in-editor key. Order:
// override, $VISUAL, $EDITOR, then a per-platform default.
func (l commandLookup) editor(override string) ([]string, bool) {
	candidates := [][]string{
		splitCommandLine(override),
		splitCommandLine(l.getenv("VISUAL")),
		splitCommandLine(l.getenv("EDITOR")),
	}
	if l.windows() {
		candidates = append(candidates, []string{"code", "--wait"}, []string{"notepad++.exe"}, []string{"notepad.exe"})
	} else {
		candidates = append(candidates, []string{"vim"}, []string{"nano"})
	}
	return l.first(candidates)
}

// splitCommandLine splits on unquoted whitespace. Single and double quotes
// group words and are removed; each kind is literal inside the other.
func splitCommandLine(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	var (
		args  []string
		word  strings.Builder
		quote rune
	)
	for _, r := range line {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		case quote == 0 && unicode.IsSpace(r):
			if word.Len() > 0 {
				args = append(args, word.String())
				word.Reset()
			}
		default:
			word.WriteRune(r)
		}
	}
	if word.Len() > 0 {
		args = append(args, word.String())
	}
	return args
}

// expandUserPath replaces a leading ~ with the home directory.
func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}
	return filepath.Join(home, path[2:])
}
