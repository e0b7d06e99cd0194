package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/signalsfoundry/sscweb/model"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet      = "Sheet1"
	maxSheetNameRunes = 31
)

// WriteXLSX exports r as a workbook with one sheet per satellite. Each sheet
// has a header row and one row per time index; absent values are left blank.
func WriteXLSX(w io.Writer, r *model.DataResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if r == nil || len(r.Data) == 0 {
		if err := f.SetCellValue(defaultSheet, "A1", NoDataLine); err != nil {
			return fmt.Errorf("write empty workbook: %w", err)
		}
		return writeWorkbook(f, w)
	}

	used := make(map[string]int)
	for i, sd := range r.Data {
		name := sheetName(sd.ID, used)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("rename sheet for %q: %w", sd.ID, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet for %q: %w", sd.ID, err)
		}
		if err := writeSatelliteSheet(f, name, sd); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)
	return writeWorkbook(f, w)
}

func writeWorkbook(f *excelize.File, w io.Writer) error {
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSatelliteSheet(f *excelize.File, sheet string, sd model.SatelliteData) error {
	header := []string{"time"}
	for _, c := range sd.Coordinates {
		for _, comp := range []string{"X", "Y", "Z", "LAT", "LON", "LOCAL_TIME"} {
			header = append(header, string(c.CoordinateSystem)+" "+comp)
		}
	}
	for _, b := range sd.BTraceData {
		label := string(b.CoordinateSystem) + "/" + string(b.Hemisphere)
		header = append(header, label+" ARC_LENGTH", label+" LAT", label+" LON")
	}
	for col, h := range header {
		if err := setCell(f, sheet, col+1, 1, h); err != nil {
			return err
		}
	}

	for i, row := range Rows(sd) {
		line := i + 2
		if err := setCell(f, sheet, 1, line, row.Time.Format(DayOfYearLayout)); err != nil {
			return err
		}
		col := 2
		var vals []Value
		for _, c := range row.Coordinates {
			vals = append(vals, c.Values()...)
		}
		for _, tr := range row.Traces {
			vals = append(vals, tr.Values()...)
		}
		for _, v := range vals {
			if v.OK {
				if err := setCell(f, sheet, col, line, v.V); err != nil {
					return err
				}
			}
			col++
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// sheetName derives a unique, length-limited sheet name from a satellite id.
func sheetName(id string, used map[string]int) string {
	name := id
	if name == "" {
		name = "satellite"
	}
	if runes := []rune(name); len(runes) > maxSheetNameRunes {
		name = string(runes[:maxSheetNameRunes])
	}
	used[name]++
	if n := used[name]; n > 1 {
		suffix := "_" + strconv.Itoa(n)
		runes := []rune(name)
		if len(runes)+len(suffix) > maxSheetNameRunes {
			runes = runes[:maxSheetNameRunes-len(suffix)]
		}
		name = string(runes) + suffix
	}
	return name
}
