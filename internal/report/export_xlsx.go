package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Report"

// Built-in number formats of the spreadsheet: 3 is "#,##0", 4 is "#,##0.00".
func xlsxNumFmt(digits int) int {
	if digits == 0 {
		return 3
	}
	return 4
}

func writeXLSX(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	numStyles := map[int]int{}
	for _, d := range []int{0, 2} {
		id, err := f.NewStyle(&excelize.Style{NumFmt: xlsxNumFmt(d)})
		if err != nil {
			return err
		}
		numStyles[d] = id
	}

	set := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(xlsxSheet, cell, v)
	}
	style := func(col, row, id int) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellStyle(xlsxSheet, cell, cell, id)
	}

	if err := set(1, 1, r.Title()); err != nil {
		return err
	}
	if err := style(1, 1, bold); err != nil {
		return err
	}

	const headerRow = 3
	header := r.Header()
	for i, h := range header {
		if err := set(i+1, headerRow, h); err != nil {
			return err
		}
		if err := style(i+1, headerRow, bold); err != nil {
			return err
		}
	}

	lines := r.Lines()
	for li, l := range lines {
		row := headerRow + 1 + li
		if err := set(1, row, l.Label); err != nil {
			return err
		}
		cells := append(append([]float64{}, l.Values...), l.Total)
		for ci, v := range cells {
			if err := set(ci+2, row, v); err != nil {
				return err
			}
			if err := style(ci+2, row, numStyles[l.Digits]); err != nil {
				return err
			}
		}
		avgCol := len(cells) + 2
		if err := set(avgCol, row, l.Average); err != nil {
			return err
		}
		if err := style(avgCol, row, numStyles[l.AverageDigits]); err != nil {
			return err
		}
	}

	noteRow := headerRow + len(lines) + 2
	if err := set(1, noteRow, syntheticNote); err != nil {
		return err
	}

	if len(r.Rows) > 0 {
		if err := addConsumptionChart(f, len(r.Rows), headerRow, noteRow+2); err != nil {
			return fmt.Errorf("adding chart: %w", err)
		}
	}

	return f.Write(w)
}

// addConsumptionChart plots the consumption line (first row under the
// header) over the voyage columns.
func addConsumptionChart(f *excelize.File, voyages, headerRow, atRow int) error {
	abs := func(col, row int) string {
		cell, _ := excelize.CoordinatesToCellName(col, row, true)
		return cell
	}
	span := func(row int) string {
		return xlsxSheet + "!" + abs(2, row) + ":" + abs(voyages+1, row)
	}

	anchor, err := excelize.CoordinatesToCellName(1, atRow)
	if err != nil {
		return err
	}
	return f.AddChart(xlsxSheet, anchor, &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       xlsxSheet + "!" + abs(1, headerRow+1),
			Categories: span(headerRow),
			Values:     span(headerRow + 1),
		}},
	})
}
