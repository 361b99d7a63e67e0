package client

import (
	"math"

	"estateinsights/models"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var errInvalidJSON = errors.New("response is not valid JSON")

// DecodeQueryResult parses a query response. gjson walks objects in document
// order, so summary, chart and row keys keep the order the backend wrote them in.
// Missing or mistyped sections decode as empty.
func DecodeQueryResult(data []byte) (*models.QueryResult, error) {
	if !gjson.ValidBytes(data) {
		return nil, errInvalidJSON
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, errors.Errorf("query response is %s, want object", doc.Type)
	}

	result := &models.QueryResult{
		Status:  doc.Get("status").String(),
		Summary: []models.AreaSummary{},
		Chart:   []models.AreaSeries{},
		Rows:    []models.Row{},
	}

	if summary := doc.Get("summary"); summary.IsObject() {
		summary.ForEach(func(key, value gjson.Result) bool {
			text := value.String()
			if value.Type == gjson.Null {
				text = ""
			}
			result.Summary = append(result.Summary, models.AreaSummary{Area: key.String(), Text: text})
			return true
		})
	}

	if chart := doc.Get("chart"); chart.IsObject() {
		chart.ForEach(func(key, value gjson.Result) bool {
			result.Chart = append(result.Chart, models.AreaSeries{
				Area: key.String(),
				Series: models.PriceSeries{
					Years:  numbers(value.Get("years")),
					Prices: numbers(value.Get("prices")),
				},
			})
			return true
		})
	}

	if rows := doc.Get("rows"); rows.IsArray() {
		for _, r := range rows.Array() {
			result.Rows = append(result.Rows, decodeRow(r))
		}
	}

	return result, nil
}

func decodeRow(r gjson.Result) models.Row {
	row := models.Row{Cells: []models.Cell{}}
	if !r.IsObject() {
		return row
	}
	r.ForEach(func(key, value gjson.Result) bool {
		cell := models.Cell{
			Column: key.String(),
			Raw:    value.Raw,
			Type:   value.Type.String(),
		}
		if value.Type == gjson.String {
			cell.Str = value.String()
		}
		row.Cells = append(row.Cells, cell)
		return true
	})
	return row
}

// numbers reads a JSON array of numbers. Nulls and non-numbers are kept as NaN.
func numbers(r gjson.Result) models.Values {
	out := models.Values{}
	if !r.IsArray() {
		return out
	}
	for _, v := range r.Array() {
		if v.Type != gjson.Number {
			out = append(out, math.NaN())
			continue
		}
		out = append(out, v.Float())
	}
	return out
}

// DecodeUploadAck reads whatever acknowledgment the backend sent. Unknown shapes yield a zero ack.
func DecodeUploadAck(data []byte) *models.UploadAck {
	ack := &models.UploadAck{}
	if !gjson.ValidBytes(data) {
		return ack
	}
	doc := gjson.ParseBytes(data)
	ack.Status = doc.Get("status").String()
	ack.Rows = int(doc.Get("rows").Int())
	ack.Error = doc.Get("error").String()
	return ack
}

func decodeBackendError(data []byte) (string, []string) {
	if !gjson.ValidBytes(data) {
		return "", nil
	}
	doc := gjson.ParseBytes(data)
	var suggestions []string
	for _, s := range doc.Get("try").Array() {
		suggestions = append(suggestions, s.String())
	}
	return doc.Get("error").String(), suggestions
}
