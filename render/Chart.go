package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/samuelfneumann/tabular/utils/floatutils"
)

// Series is a named sequence of values, one per step
type Series struct {
	Name   string
	Values []float64
}

// LineChart renders the series as lines over their steps and writes
// the chart to w as an HTML page. Series may differ in length; the x
// axis spans the longest. All values must be finite.
func LineChart(w io.Writer, title string, series ...Series) error {
	if len(series) == 0 {
		return fmt.Errorf("lineChart: no series to plot")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "step"}),
	)

	var steps int
	for _, s := range series {
		if !floatutils.AllFinite(s.Values) {
			return fmt.Errorf("lineChart: series %q has non-finite values",
				s.Name)
		}
		steps = max(steps, len(s.Values))
	}
	axis := make([]string, steps)
	for i := range axis {
		axis[i] = fmt.Sprintf("%d", i+1)
	}
	line.SetXAxis(axis)

	for _, s := range series {
		items := make([]opts.LineData, len(s.Values))
		for i, v := range s.Values {
			items[i] = opts.LineData{Value: v}
		}
		line.AddSeries(s.Name, items)
	}

	return line.Render(w)
}
