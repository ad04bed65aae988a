package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	sectionMeasTime = "MEAS_TIM:"
	sectionData     = "DATA:"
	sectionEnerFit  = "ENER_FIT:"
)

// ParseSPE reads an SPE spectrum. Channel i of the $DATA: range maps to
// energy intercept + i*slope from $ENER_FIT:.
func ParseSPE(r io.Reader) (*Spectrum, error) {
	sections, err := readSections(r)
	if err != nil {
		return nil, err
	}

	times, err := sectionFields(sections, sectionMeasTime, 2)
	if err != nil {
		return nil, err
	}
	liveTime, realTime := times[0], times[1]

	fit, err := sectionFields(sections, sectionEnerFit, 2)
	if err != nil {
		return nil, err
	}
	intercept, slope := fit[0], fit[1]

	data, ok := sections[sectionData]
	if !ok || len(data) == 0 {
		return nil, fmt.Errorf("%w: missing $%s section", ErrMalformed, sectionData)
	}
	bounds := strings.Fields(data[0])
	if len(bounds) < 2 {
		return nil, fmt.Errorf("%w: $%s range %q", ErrMalformed, sectionData, data[0])
	}
	start, err1 := strconv.Atoi(bounds[0])
	end, err2 := strconv.Atoi(bounds[1])
	if err1 != nil || err2 != nil || end < start {
		return nil, fmt.Errorf("%w: $%s range %q", ErrMalformed, sectionData, data[0])
	}

	counts := make([]float64, 0, end-start+1)
	for _, line := range data[1:] {
		for _, f := range strings.Fields(line) {
			c, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: $%s count %q: %v", ErrMalformed, sectionData, f, err)
			}
			counts = append(counts, c)
		}
	}
	if len(counts) != end-start+1 {
		return nil, fmt.Errorf("%w: $%s declares channels %d..%d but holds %d counts",
			ErrMalformed, sectionData, start, end, len(counts))
	}

	energies := make([]float64, len(counts))
	for i := range energies {
		energies[i] = intercept + float64(start+i)*slope
	}

	return NewSpectrum(liveTime, realTime, energies, counts)
}

// readSections splits the input at lines starting with '$' and returns the
// non-blank lines of each section keyed by its name, e.g. "DATA:".
func readSections(r io.Reader) (map[string][]string, error) {
	sections := make(map[string][]string)
	current := ""

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "$") {
			current = strings.TrimPrefix(line, "$")
			if _, dup := sections[current]; !dup {
				sections[current] = nil
			}
			continue
		}
		if current == "" || line == "" {
			continue
		}
		sections[current] = append(sections[current], line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ingest: reading spe: %w", err)
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: no $ sections", ErrMalformed)
	}
	return sections, nil
}

// sectionFields parses the first n numbers on the first line of a section.
func sectionFields(sections map[string][]string, name string, n int) ([]float64, error) {
	lines, ok := sections[name]
	if !ok || len(lines) == 0 {
		return nil, fmt.Errorf("%w: missing $%s section", ErrMalformed, name)
	}
	fields := strings.Fields(lines[0])
	if len(fields) < n {
		return nil, fmt.Errorf("%w: $%s wants %d values, got %q", ErrMalformed, name, n, lines[0])
	}

	out := make([]float64, n)
	for i := range out {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: $%s value %q: %v", ErrMalformed, name, fields[i], err)
		}
		out[i] = v
	}
	return out, nil
}
