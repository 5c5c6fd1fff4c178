// Package importer reads automatic tank gauge exports into readings.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/tankops/internal/apperr"
	"github.com/MrJamesThe3rd/tankops/internal/inventory"
)

// Parser reads gauge CSV exports. It detects the delimiter and the export
// format from the header row; timestamps without a zone are read in loc.
type Parser struct {
	loc *time.Location
}

func NewParser(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.UTC
	}

	return &Parser{loc: loc}
}

func (p *Parser) Parse(r io.Reader) ([]inventory.ReadingParams, error) {
	utf8r, err := utf8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	content, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	for _, comma := range []rune{';', ',', '\t'} {
		rows, err := readCSV(content, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		return p.parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, apperr.Validation("no matching gauge export format found", map[string][]string{
		"file": {"expected a medicao or atg gauge export"},
	})
}

func readCSV(content []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips rows without a readable timestamp (blank lines, footers)
// and fails on a timestamped row whose volume does not parse.
func (p *Parser) parseRows(prof *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]inventory.ReadingParams, error) {
	var readings []inventory.ReadingParams

	fields := map[string][]string{}

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		takenAt, ok := p.parseTime(prof, cols, row)
		if !ok {
			continue
		}

		raw := cellValue(row, cols[prof.VolumeCol])

		liters, err := parseVolume(raw)
		if err != nil {
			key := fmt.Sprintf("row %d", rowNum)
			fields[key] = append(fields[key], fmt.Sprintf("invalid volume %q", raw))

			continue
		}

		readings = append(readings, inventory.ReadingParams{LiterValue: liters, TakenAt: takenAt})
	}

	if len(fields) > 0 {
		return nil, apperr.Validation("invalid gauge export", fields)
	}

	return readings, nil
}

func (p *Parser) parseTime(prof *Profile, cols colIndex, row []string) (time.Time, bool) {
	var s string

	if prof.DateTimeCol != "" {
		s = cellValue(row, cols[prof.DateTimeCol])
	} else {
		date, clock := cellValue(row, cols[prof.DateCol]), cellValue(row, cols[prof.TimeCol])
		if date == "" || clock == "" {
			return time.Time{}, false
		}

		s = date + " " + clock
	}

	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range prof.Layouts {
		if t, err := time.ParseInLocation(layout, s, p.loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
