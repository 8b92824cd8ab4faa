package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"Pavement/internal/calc/axles"
)

var ErrEmptySheet = errors.New("empty sheet")

// ParseComposition reads a vehicle composition from the first sheet of an
// xlsx workbook: vehicle code in column A, share (%) in column B. A first
// row whose share is not a number is taken as a header.
func ParseComposition(r io.Reader) (map[string]float64, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	comp := make(map[string]float64)
	for i, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(row[0]))
		share := 0.0
		if len(row) > 1 && strings.TrimSpace(row[1]) != "" {
			share, err = toFloat(row[1])
			if err != nil {
				if i == 0 {
					continue
				}
				return nil, fmt.Errorf("row %d: share %q: %w", i+1, row[1], err)
			}
		}
		if !axles.IsVehicle(code) {
			return nil, fmt.Errorf("row %d: %w: unknown vehicle %q", i+1, axles.ErrInvalidComposition, row[0])
		}
		if _, dup := comp[code]; dup {
			return nil, fmt.Errorf("row %d: %w: vehicle %s listed twice", i+1, axles.ErrInvalidComposition, code)
		}
		comp[code] = share
	}
	if len(comp) == 0 {
		return nil, ErrEmptySheet
	}
	if err := axles.ToComposition(comp).Validate(); err != nil {
		return nil, err
	}
	return comp, nil
}

func toFloat(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
}
