package cli

import (
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"golang.org/x/term"
)

// Highlighting used for documents printed to a terminal.
const (
	highlightFormatter = "terminal256"
	highlightStyle     = "dracula"
)

// colorEnabled reports whether w should receive ANSI colors.
var colorEnabled = func(w io.Writer) bool { //nolint:gochecknoglobals // Replaced in tests.
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // Fd fits in int on supported platforms.
}

// writeSource prints a YAML or JSON document, colorized when w is a terminal.
// Highlighting failures fall back to the plain text.
func writeSource(w io.Writer, src, lang string) error {
	if colorEnabled(w) {
		if err := quick.Highlight(w, src, lang, highlightFormatter, highlightStyle); err == nil {
			return nil
		}
	}
	_, err := io.WriteString(w, src)
	return err
}
