package models

import (
	"encoding/json"
	"math"
	"time"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type ChatMessage struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// IsUser reports whether the message was typed (or uploaded) by the user.
func (m ChatMessage) IsUser() bool {
	return m.Sender == SenderUser
}

// AreaSummary is one entry of the backend's summary mapping.
type AreaSummary struct {
	Area string `json:"area"`
	Text string `json:"text"`
}

// PriceSeries is the yearly average price trend for one area.
type PriceSeries struct {
	Years  Values `json:"years"`
	Prices Values `json:"prices"`
}

// Values is a list of numbers where a JSON null is kept as NaN, so a gap
// stays a gap instead of becoming zero.
type Values []float64

func (v Values) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	buf := make([]byte, 0, 8*len(v)+2)
	buf = append(buf, '[')
	for i, f := range v {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			buf = append(buf, "null"...)
			continue
		}
		b, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		buf = append(buf, b...)
	}
	return append(buf, ']'), nil
}

func (v *Values) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*v = nil
		return nil
	}
	out := make(Values, len(raw))
	for i, f := range raw {
		if f == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *f
	}
	*v = out
	return nil
}

// AreaSeries is one entry of the backend's chart mapping.
type AreaSeries struct {
	Area   string      `json:"area"`
	Series PriceSeries `json:"series"`
}

// Cell holds a single column value. Raw is the JSON text the backend sent,
// Type is the gjson type name ("String", "Number", "True", "False", "Null", "JSON")
// and Str is the unquoted value when Type is "String".
type Cell struct {
	Column string `json:"column"`
	Raw    string `json:"raw"`
	Type   string `json:"type"`
	Str    string `json:"str,omitempty"`
}

// Row keeps cells in the order the backend wrote them.
type Row struct {
	Cells []Cell `json:"cells"`
}

// Columns returns the column names of the row in order.
func (r Row) Columns() []string {
	cols := make([]string, 0, len(r.Cells))
	for _, c := range r.Cells {
		cols = append(cols, c.Column)
	}
	return cols
}

// Get returns the cell for column, or false if the row has no such key.
func (r Row) Get(column string) (Cell, bool) {
	for _, c := range r.Cells {
		if c.Column == column {
			return c, true
		}
	}
	return Cell{}, false
}

// QueryResult is the combined summary/chart/rows payload for one query.
// Summary and Chart are slices so the backend's key order survives decoding.
type QueryResult struct {
	Status  string        `json:"status,omitempty"`
	Summary []AreaSummary `json:"summary"`
	Chart   []AreaSeries  `json:"chart"`
	Rows    []Row         `json:"rows"`
}

// FirstArea returns the first key of the summary mapping.
func (q *QueryResult) FirstArea() (string, bool) {
	if q == nil || len(q.Summary) == 0 {
		return "", false
	}
	return q.Summary[0].Area, true
}

func (q *QueryResult) SummaryFor(area string) (string, bool) {
	if q == nil {
		return "", false
	}
	for _, s := range q.Summary {
		if s.Area == area {
			return s.Text, true
		}
	}
	return "", false
}

func (q *QueryResult) SeriesFor(area string) (*PriceSeries, bool) {
	if q == nil {
		return nil, false
	}
	for i := range q.Chart {
		if q.Chart[i].Area == area {
			return &q.Chart[i].Series, true
		}
	}
	return nil, false
}

// UploadAck is the backend's reply to a spreadsheet upload.
type UploadAck struct {
	Status string `json:"status,omitempty"`
	Rows   int    `json:"rows,omitempty"`
	Error  string `json:"error,omitempty"`
}

// DashboardState is the root application's per-session state.
type DashboardState struct {
	AreaInput string       `json:"area_input"`
	Loading   bool         `json:"loading"`
	Result    *QueryResult `json:"result,omitempty"`
	Error     string       `json:"error,omitempty"`
}

// HasResult reports whether a successful query has been stored.
func (s DashboardState) HasResult() bool {
	return s.Result != nil
}

type AskRequest struct {
	Area string `json:"area" form:"area"`
}

type ChatRequest struct {
	Message string `json:"message" form:"message"`
}

type ChatResponse struct {
	Messages []ChatMessage `json:"messages"`
	Typing   bool          `json:"typing"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// AskResponse is the JSON API's view of a successful query.
type AskResponse struct {
	Area   string       `json:"area"`
	Result *QueryResult `json:"result"`
}
