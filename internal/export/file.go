package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"employee-api/internal/domain"
)

// Format selects the roster encoding.
type Format string

const (
	FormatCSV Format = "csv"
	FormatXML Format = "xml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXML:
		return f, nil
	default:
		return "", fmt.Errorf("export: unknown format %q (want csv or xml)", s)
	}
}

// WriteRosterFile writes emps to outPath, creating parent directories.
// The file is written to a temp name first and renamed into place.
func WriteRosterFile(outPath string, format Format, emps []domain.Employee, now time.Time) error {
	if dir := filepath.Dir(outPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: mkdir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".roster-*")
	if err != nil {
		return fmt.Errorf("export: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	switch format {
	case FormatCSV:
		err = WriteRosterCSV(tmp, emps)
	case FormatXML:
		err = WriteRosterXML(tmp, emps, now)
	default:
		err = fmt.Errorf("export: unknown format %q", format)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("export: write %s: %w", outPath, err)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return fmt.Errorf("export: rename: %w", err)
	}
	return nil
}
