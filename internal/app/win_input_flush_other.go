//go:build !windows

package app

// flushConsoleInput is a no-op outside Windows; the terminal is reset by
// tcell when the screen resumes.
func flushConsoleInput() error {
	return nil
}
