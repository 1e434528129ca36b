// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes the user-selected subset of a result set to a
// timestamped CSV file with a commented metadata header.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/pleabargain/market-scout/pkg/types"
)

// ErrNoSelection is returned when an export is requested with zero rows
// selected. No file is written in that case.
var ErrNoSelection = errors.New("no results selected")

const timestampLayout = "20060102_150405"

// filenameNoise lists tokens stripped from the query part of the filename to
// keep it short. Removal is by substring, not word boundary, matching the
// historical file naming this tool's exports are collated under; "domain"
// loses its "in", "trending" loses its "trends". Kept for compatibility with
// existing export archives.
var filenameNoise = []string{"market", "trends", "analysis", "in"}

// Exporter writes selection exports into Dir. Now supplies the timestamp used
// in both the filename and the metadata header; tests pin it.
type Exporter struct {
	Dir string
	Now func() time.Time
}

// New returns an Exporter writing into dir with the wall clock.
func New(cfg types.ExportConfig) *Exporter {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	return &Exporter{Dir: dir, Now: time.Now}
}

// Export writes the selected rows of results to a CSV file named after the
// regions, a sanitized query prefix, and a timestamp. The selected flag is
// dropped from the output shape. It returns the bare filename (not the full
// path) for the caller to report. With zero selected rows it returns
// ErrNoSelection and writes nothing.
func (e *Exporter) Export(results []types.Result, query string, selectedRegions []string) (string, error) {
	var selected []types.Result
	for _, r := range results {
		if r.Selected {
			selected = append(selected, r)
		}
	}
	if len(selected) == 0 {
		return "", ErrNoSelection
	}

	timestamp := e.Now().Format(timestampLayout)
	filename := buildFilename(query, selectedRegions, timestamp)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Search Query: %s\n", query)
	fmt.Fprintf(&buf, "# Regions: %s\n", strings.Join(selectedRegions, ", "))
	fmt.Fprintf(&buf, "# Timestamp: %s\n", timestamp)
	fmt.Fprintf(&buf, "#%s\n", strings.Repeat("=", 50))

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"title", "summary", "url"}); err != nil {
		return "", fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range selected {
		if err := w.Write([]string{r.Title, r.Summary, r.URL}); err != nil {
			return "", fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("encoding CSV: %w", err)
	}

	path := filepath.Join(e.Dir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}

	return filename, nil
}

// buildFilename derives {regions}_{query}_{timestamp}.csv. The derivation is
// deterministic for a fixed timestamp: region names are underscore-joined and
// lower-cased ("global" when none), the query is cut to its first 30 runes,
// stripped to alphanumerics plus space, hyphen, and underscore, noise tokens
// are removed, and underscore runs collapse to one.
func buildFilename(query string, selectedRegions []string, timestamp string) string {
	regionStr := "global"
	if len(selectedRegions) > 0 {
		regionStr = strings.ToLower(strings.Join(selectedRegions, "_"))
		regionStr = strings.ReplaceAll(regionStr, " ", "_")
	}

	runes := []rune(query)
	if len(runes) > 30 {
		runes = runes[:30]
	}
	var b strings.Builder
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	cleanQuery := strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")

	for _, noise := range filenameNoise {
		cleanQuery = strings.ReplaceAll(cleanQuery, noise, "")
	}

	var segments []string
	for _, seg := range strings.Split(cleanQuery, "_") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	cleanQuery = strings.Join(segments, "_")

	return fmt.Sprintf("%s_%s_%s.csv", regionStr, cleanQuery, timestamp)
}
