package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	keyLiveTime = "live time (s)"
	keyRealTime = "real time (s)"
)

// ParseColumnar reads a columnar spectrum. Lines starting with '#' carry
// "key: value" metadata; other non-blank lines are rows of numbers separated
// by whitespace, commas or semicolons. The first column is energy, the
// second the raw count; extra columns are ignored.
//
// Metadata keys are matched case-insensitively. A missing real time
// defaults to the live time.
func ParseColumnar(r io.Reader) (*Spectrum, error) {
	meta := make(map[string]string)
	var energies, counts []float64

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			key, value, ok := strings.Cut(strings.TrimSpace(line[1:]), ":")
			if ok {
				meta[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
			}
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t'
		})
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d has %d columns, want at least 2", ErrMalformed, lineNo, len(fields))
		}
		e, err1 := strconv.ParseFloat(fields[0], 64)
		c, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformed, lineNo, line)
		}
		energies = append(energies, e)
		counts = append(counts, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ingest: reading columnar: %w", err)
	}

	liveTime, err := metaFloat(meta, keyLiveTime)
	if err != nil {
		return nil, err
	}
	realTime := liveTime
	if _, ok := meta[keyRealTime]; ok {
		if realTime, err = metaFloat(meta, keyRealTime); err != nil {
			return nil, err
		}
	}

	return NewSpectrum(liveTime, realTime, energies, counts)
}

func metaFloat(meta map[string]string, key string) (float64, error) {
	raw, ok := meta[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %q metadata", ErrMalformed, key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q metadata %q: %v", ErrMalformed, key, raw, err)
	}
	return v, nil
}
