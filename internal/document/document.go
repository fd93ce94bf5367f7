package document

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zeebo/blake3"
	"golang.org/x/text/unicode/norm"
)

// MaxBytes caps how much of a file is read as a document.
const MaxBytes int64 = 8 << 20

var (
	ErrNotText  = errors.New("not a text document")
	ErrTooLarge = errors.New("document too large")
)

var markdownExts = map[string]struct{}{
	".md":       {},
	".markdown": {},
	".mdown":    {},
	".mkd":      {},
	".mkdown":   {},
	".mdwn":     {},
}

// Document is a decoded markdown source ready for parsing.
type Document struct {
	Path    string
	Text    string
	Digest  string
	ModTime time.Time
	Size    int64
}

// Load reads and decodes the document at path.
func Load(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, err
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("%s: is a directory", path)
	}
	if info.Size() > MaxBytes {
		return Document{}, fmt.Errorf("%s: %w (%d bytes)", path, ErrTooLarge, info.Size())
	}

	content, err := readFileHead(path, MaxBytes+1)
	if err != nil {
		return Document{}, err
	}
	if int64(len(content)) > MaxBytes {
		return Document{}, fmt.Errorf("%s: %w", path, ErrTooLarge)
	}

	doc, err := FromBytes(path, content)
	if err != nil {
		return Document{}, err
	}
	doc.ModTime = info.ModTime()
	return doc, nil
}

// FromBytes decodes content that was read from path. The text is
// normalized to NFC so that equal documents hash equally.
func FromBytes(path string, content []byte) (Document, error) {
	if !IsTextFile(path, content) {
		return Document{}, fmt.Errorf("%s: %w", path, ErrNotText)
	}
	text := norm.NFC.String(DecodeText(content))
	return Document{
		Path:   path,
		Text:   text,
		Digest: Digest(text),
		Size:   int64(len(content)),
	}, nil
}

// Digest is the hex BLAKE3 sum of text.
func Digest(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// IsMarkdownPath reports whether path has a markdown extension.
func IsMarkdownPath(path string) bool {
	_, ok := markdownExts[strings.ToLower(filepath.Ext(path))]
	return ok
}
