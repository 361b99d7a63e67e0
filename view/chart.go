package view

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"estateinsights/models"
)

// ChartHeight is the fixed height of the price trend canvas, in pixels.
const ChartHeight = 320

// Price trend theme.
const (
	priceLineColor = "#ff8c2b"
	priceFillColor = "rgba(255, 140, 43, 0.25)"
	legendColor    = "#eee"
	tickColor      = "#ccc"
)

// ChartConfig is a Chart.js configuration object.
type ChartConfig struct {
	Type    string       `json:"type"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type ChartDataset struct {
	Label                string        `json:"label"`
	Data                 models.Values `json:"data"`
	BorderColor          string        `json:"borderColor"`
	BackgroundColor      string        `json:"backgroundColor"`
	BorderWidth          int           `json:"borderWidth"`
	PointRadius          int           `json:"pointRadius"`
	PointHoverRadius     int           `json:"pointHoverRadius"`
	PointBackgroundColor string        `json:"pointBackgroundColor"`
	Tension              float64       `json:"tension"`
}

type ChartOptions struct {
	Responsive          bool         `json:"responsive"`
	MaintainAspectRatio bool         `json:"maintainAspectRatio"`
	Plugins             ChartPlugins `json:"plugins"`
	Scales              ChartScales  `json:"scales"`
	Layout              ChartLayout  `json:"layout"`
}

type ChartPlugins struct {
	Legend  ChartLegend  `json:"legend"`
	Tooltip ChartTooltip `json:"tooltip"`
}

type ChartLegend struct {
	Labels ChartLegendLabels `json:"labels"`
}

type ChartLegendLabels struct {
	Color string    `json:"color"`
	Font  ChartFont `json:"font"`
}

type ChartFont struct {
	Size int `json:"size"`
}

type ChartTooltip struct {
	BackgroundColor string `json:"backgroundColor"`
	TitleColor      string `json:"titleColor"`
	BodyColor       string `json:"bodyColor"`
}

type ChartScales struct {
	X ChartAxis `json:"x"`
	Y ChartAxis `json:"y"`
}

type ChartAxis struct {
	Ticks ChartColor `json:"ticks"`
	Grid  ChartColor `json:"grid"`
}

type ChartColor struct {
	Color string `json:"color"`
}

type ChartLayout struct {
	Padding int `json:"padding"`
}

// ChartView is a rendered price trend: the Chart.js config and its JSON form.
type ChartView struct {
	Config ChartConfig
	JSON   string
	Height int
}

// BuildChart maps a price series onto the themed single-line chart. It
// returns nil when there are no years to plot, which the template shows
// as the chart placeholder.
func BuildChart(series *models.PriceSeries) *ChartView {
	if series == nil || len(series.Years) == 0 {
		return nil
	}

	labels := make([]string, 0, len(series.Years))
	for _, y := range series.Years {
		if math.IsNaN(y) {
			labels = append(labels, "")
			continue
		}
		labels = append(labels, formatNumber(y))
	}
	prices := series.Prices
	if prices == nil {
		prices = models.Values{}
	}

	cfg := ChartConfig{
		Type: "line",
		Data: ChartData{
			Labels: labels,
			Datasets: []ChartDataset{{
				Label:                "Average Price",
				Data:                 prices,
				BorderColor:          priceLineColor,
				BackgroundColor:      priceFillColor,
				BorderWidth:          3,
				PointRadius:          5,
				PointHoverRadius:     7,
				PointBackgroundColor: priceLineColor,
				Tension:              0.4,
			}},
		},
		Options: ChartOptions{
			Responsive:          true,
			MaintainAspectRatio: false,
			Plugins: ChartPlugins{
				Legend: ChartLegend{Labels: ChartLegendLabels{Color: legendColor, Font: ChartFont{Size: 14}}},
				Tooltip: ChartTooltip{
					BackgroundColor: "#222",
					TitleColor:      "#fff",
					BodyColor:       "#ddd",
				},
			},
			Scales: ChartScales{
				X: ChartAxis{Ticks: ChartColor{Color: tickColor}, Grid: ChartColor{Color: "rgba(255,255,255,0.05)"}},
				Y: ChartAxis{Ticks: ChartColor{Color: tickColor}, Grid: ChartColor{Color: "rgba(255,255,255,0.07)"}},
			},
			Layout: ChartLayout{Padding: 12},
		},
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		// non-finite prices
		return nil
	}
	return &ChartView{Config: cfg, JSON: string(data), Height: ChartHeight}
}

// formatNumber prints a number the way a browser would: shortest form, plain
// decimals for 1e-6 <= |f| < 1e21 and exponent form ("1e+21", "1.5e-7")
// outside that range.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}
