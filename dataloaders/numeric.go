// Package dataloaders reads observed samples from disk into plain
// numeric sequences. The resampling engine assumes its input is already
// clean; filtering out missing and non-finite entries happens here.
package dataloaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var ErrNoData = errors.New("no numeric data")

// Missing-value markers commonly found in exported datasets.
var missingTokens = map[string]bool{
	"": true, "na": true, "n/a": true, "nan": true, "null": true, "-": true,
}

// ReadSeq parses one numeric sequence from r. Values may be separated
// by whitespace, commas, or newlines; blank lines and #-comments are
// skipped; missing-value markers and non-finite values are dropped.
// A token that is neither a number nor a known marker is an error, to
// avoid quietly loading the wrong column of a file.
func ReadSeq(r io.Reader) ([]float64, error) {
	var vals []float64
	dropped := 0
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t'
		})
		for _, f := range fields {
			if missingTokens[strings.ToLower(strings.TrimSpace(f))] {
				dropped++
				continue
			}
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: unparseable value %q: %w", lineno, f, err)
			}
			vals = append(vals, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	finite := lo.Filter(vals, func(v float64, _ int) bool {
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	})
	dropped += len(vals) - len(finite)
	if dropped > 0 {
		log.Debug().Int("dropped", dropped).Msg("dropped missing or non-finite values")
	}
	if len(finite) == 0 {
		return nil, ErrNoData
	}
	return finite, nil
}

// LoadSeq reads one numeric sequence from a file.
func LoadSeq(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	vals, err := ReadSeq(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("n", len(vals)).Msg("loaded sequence")
	return vals, nil
}

// LoadGroups reads one sequence per file, in order.
func LoadGroups(paths ...string) ([][]float64, error) {
	groups := make([][]float64, len(paths))
	for i, p := range paths {
		g, err := LoadSeq(p)
		if err != nil {
			return nil, err
		}
		groups[i] = g
	}
	return groups, nil
}
