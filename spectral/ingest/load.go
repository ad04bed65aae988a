package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a spectrum file format.
type Format int

const (
	FormatColumnar Format = iota
	FormatSPE
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatSPE:
		return "spe"
	case FormatColumnar:
		return "columnar"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// DetectFormat picks the format from the file extension: ".spe" (any case)
// is SPE, everything else columnar.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".spe") {
		return FormatSPE
	}
	return FormatColumnar
}

// Load opens path and parses it in the format chosen by [DetectFormat].
func Load(path string) (*Spectrum, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	defer f.Close()

	var s *Spectrum
	switch DetectFormat(path) {
	case FormatSPE:
		s, err = ParseSPE(f)
	default:
		s, err = ParseColumnar(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
