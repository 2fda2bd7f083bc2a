package textfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/baditaflorin/go_text_similarity/internal/ports"
)

// Format selects how a score is rendered.
type Format string

const (
	// FormatDecimal renders the score as a fixed-point number, e.g. 0.85.
	FormatDecimal Format = "decimal"
	// FormatPercent renders the score as a percentage, e.g. 85.00%.
	FormatPercent Format = "percent"
)

// ParseFormat converts a flag or config value into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatDecimal, FormatPercent:
		return Format(s), nil
	case "":
		return FormatDecimal, nil
	default:
		return "", fmt.Errorf("invalid output format %q: must be 'decimal' or 'percent'", s)
	}
}

// FormatScore renders score with the given number of decimals.
func FormatScore(score float64, format Format, precision int) string {
	if format == FormatPercent {
		return strconv.FormatFloat(score*100, 'f', precision, 64) + "%"
	}
	return strconv.FormatFloat(score, 'f', precision, 64)
}

// Writer writes formatted results as UTF-8 files.
type Writer struct {
	format    Format
	precision int
	logger    ports.Logger
}

// NewWriter creates a result writer.
func NewWriter(format Format, precision int, logger ports.Logger) *Writer {
	return &Writer{format: format, precision: precision, logger: logger}
}

// Write stores the formatted score at path, creating parent directories.
func (w *Writer) Write(path string, score float64) error {
	content := FormatScore(score, w.format, w.precision)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return wrapWriteErr(path, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return wrapWriteErr(path, err)
	}

	w.logger.Debug("Wrote result", "path", path, "content", content)
	return nil
}

func wrapWriteErr(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %s", ErrPermission, path)
	}
	return fmt.Errorf("write %s: %w", path, err)
}
