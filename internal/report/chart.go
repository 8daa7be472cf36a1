package report

// Bar is one voyage in the consumption chart.
type Bar struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
	Ratio float64 `json:"ratio" yaml:"ratio"`
}

// Chart is the consumption series scaled for rendering. Ratios are relative
// to Max, which is never below the KPI, the average or 1.
type Chart struct {
	Bars         []Bar   `json:"bars" yaml:"bars"`
	Max          float64 `json:"max" yaml:"max"`
	Average      float64 `json:"average" yaml:"average"`
	AverageRatio float64 `json:"averageRatio" yaml:"averageRatio"`
	KPI          float64 `json:"kpi" yaml:"kpi"`
	KPIRatio     float64 `json:"kpiRatio" yaml:"kpiRatio"`
}

// NewChart scales values against max(kpi, avg, values..., 1).
func NewChart(labels []string, values []float64, avg, kpi float64) Chart {
	maxV := max(kpi, avg, 1)
	for _, v := range values {
		maxV = max(maxV, v)
	}

	bars := make([]Bar, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		bars[i] = Bar{Label: label, Value: v, Ratio: max(v, 0) / maxV}
	}

	return Chart{
		Bars:         bars,
		Max:          maxV,
		Average:      avg,
		AverageRatio: max(avg, 0) / maxV,
		KPI:          kpi,
		KPIRatio:     max(kpi, 0) / maxV,
	}
}
