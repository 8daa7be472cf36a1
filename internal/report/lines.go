package report

import "strconv"

// Line is one metric across all voyages, as laid out in the report table.
type Line struct {
	Label         string
	Values        []float64
	Total         float64
	Average       float64
	Digits        int
	AverageDigits int
}

// Lines returns the metrics in table order.
func (r *Report) Lines() []Line {
	col := func(pick func(Row) float64) []float64 {
		out := make([]float64, len(r.Rows))
		for i, row := range r.Rows {
			out[i] = pick(row)
		}
		return out
	}
	t := r.Totals

	return []Line{
		{"Fuel consumption (L)", col(func(x Row) float64 { return x.TotalConsumption }), t.Consumption.Total, t.Consumption.Average, 0, 0},
		{"TEUs", col(func(x Row) float64 { return x.TEUs }), t.TEUs.Total, t.TEUs.Average, 0, 2},
		{"Container weight", col(func(x Row) float64 { return x.Weight }), t.Weight.Total, t.Weight.Average, 0, 0},
		{"Port calls (estimated)", col(func(x Row) float64 { return float64(x.PortCalls) }), t.PortCalls.Total, t.PortCalls.Average, 0, 2},
		{"Reefer plugs (peak)", col(func(x Row) float64 { return x.PeakReefer }), t.PeakReefer.Total, t.PeakReefer.Average, 0, 2},
		{"Idle time (h)", col(func(x Row) float64 { return x.IdleHours }), t.IdleHours.Total, t.IdleHours.Average, 2, 2},
	}
}

// Header returns the column headings: metric, each voyage, total, average.
func (r *Report) Header() []string {
	h := make([]string, 0, len(r.Rows)+3)
	h = append(h, "Metric")
	for _, row := range r.Rows {
		h = append(h, row.VoyNo)
	}
	return append(h, "Total", "Average")
}

// Table renders Header and Lines as plain strings without grouping.
func (r *Report) Table() [][]string {
	out := [][]string{r.Header()}
	for _, l := range r.Lines() {
		rec := make([]string, 0, len(l.Values)+3)
		rec = append(rec, l.Label)
		for _, v := range l.Values {
			rec = append(rec, strconv.FormatFloat(v, 'f', l.Digits, 64))
		}
		rec = append(rec,
			strconv.FormatFloat(l.Total, 'f', l.Digits, 64),
			strconv.FormatFloat(l.Average, 'f', l.AverageDigits, 64),
		)
		out = append(out, rec)
	}
	return out
}
