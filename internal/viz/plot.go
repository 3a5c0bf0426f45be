package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"
)

const (
	plotWidth  = 80
	plotHeight = 10
)

// Series renders one labeled time series.
func Series(data []float64, caption string) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// Stacked renders several series one above the other, the layout of the
// classic drop chart: height on top, velocity below.
func Stacked(series [][]float64, captions []string) string {
	var sb strings.Builder
	for i, data := range series {
		caption := ""
		if i < len(captions) {
			caption = captions[i]
		}
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(Series(data, caption))
	}
	return sb.String()
}
