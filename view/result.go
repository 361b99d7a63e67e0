package view

import "estateinsights/models"

// Placeholders shown when a section has nothing to render.
const (
	NoSummary = "No summary available."
	NoChart   = "No chart data"
	NoRows    = "No rows found."
	NoResults = "No results yet."
)

// ResultView is the result panel for one query: heading, summary, price trend and dataset.
type ResultView struct {
	Area    string
	Summary string
	Chart   *ChartView
	Table   *TableView
}

// Heading is the panel title.
func (r *ResultView) Heading() string {
	return "Insights for: " + r.Area
}

func (r *ResultView) HasSummary() bool {
	return r.Summary != ""
}

// DisplayArea picks the area the panel is about: the first key of the
// summary mapping, or the typed area when the summary is empty.
func DisplayArea(result *models.QueryResult, typedArea string) string {
	if area, ok := result.FirstArea(); ok && area != "" {
		return area
	}
	return typedArea
}

// BuildResult shapes a query result for display. Each section is built
// independently, so a missing chart never hides the summary or the table.
// It returns nil when there is no result yet.
func BuildResult(result *models.QueryResult, typedArea string) *ResultView {
	if result == nil {
		return nil
	}

	area := DisplayArea(result, typedArea)
	rv := &ResultView{Area: area}

	if text, ok := result.SummaryFor(area); ok {
		rv.Summary = text
	}
	if series, ok := result.SeriesFor(area); ok {
		rv.Chart = BuildChart(series)
	}
	rv.Table = BuildTable(result.Rows)
	return rv
}
