// Package textfile reads documents of unknown encoding into UTF-8 strings and
// writes formatted similarity results.
package textfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"

	"github.com/baditaflorin/go_text_similarity/internal/ports"
)

var (
	// ErrNotFound is returned when the input file does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrPermission is returned when the file cannot be opened for lack of rights.
	ErrPermission = errors.New("permission denied")
	// ErrUndecodable is returned when no supported encoding decodes the file cleanly.
	ErrUndecodable = errors.New("unsupported text encoding")
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Reader loads text files and converts them to UTF-8.
type Reader struct {
	logger ports.Logger
}

// NewReader creates a new reader.
func NewReader(logger ports.Logger) *Reader {
	return &Reader{logger: logger}
}

// Read returns the decoded content of path.
func (r *Reader) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		case errors.Is(err, fs.ErrPermission):
			return "", fmt.Errorf("%w: %s", ErrPermission, path)
		default:
			return "", fmt.Errorf("read %s: %w", path, err)
		}
	}

	text, name, err := Decode(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	r.logger.Debug("Read text file",
		"path", path,
		"bytes", len(data),
		"encoding", name,
	)
	return text, nil
}

// Decode detects the encoding of data, strips any byte-order mark and returns
// the UTF-8 text with the name of the detected encoding.
func Decode(data []byte) (string, string, error) {
	if len(data) == 0 {
		return "", "utf-8", nil
	}

	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return string(data[len(bomUTF8):]), "utf-8-bom", nil
	case bytes.HasPrefix(data, bomUTF16LE):
		text, err := decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), data)
		return text, "utf-16le", err
	case bytes.HasPrefix(data, bomUTF16BE):
		text, err := decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), data)
		return text, "utf-16be", err
	}

	if utf8.Valid(data) {
		return string(data), "utf-8", nil
	}

	// GB18030 is a superset of GBK and GB2312.
	if text, err := decodeWith(simplifiedchinese.GB18030, data); err == nil && !strings.ContainsRune(text, utf8.RuneError) {
		return text, "gb18030", nil
	}

	return "", "", ErrUndecodable
}

func decodeWith(enc encoding.Encoding, data []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	return string(out), nil
}
