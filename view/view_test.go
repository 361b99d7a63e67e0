package view

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"estateinsights/client"
	"estateinsights/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) *models.QueryResult {
	t.Helper()
	result, err := client.DecodeQueryResult([]byte(body))
	require.NoError(t, err)
	return result
}

const wakad = `{
	"summary": {"Wakad": "Prices rose 12%"},
	"chart": {"Wakad": {"years": [2021, 2022, 2023], "prices": [50, 55, 60]}},
	"rows": [{"Locality": "Wakad", "Price": 55}]
}`

func TestBuildResult_WakadScenario(t *testing.T) {
	rv := BuildResult(decode(t, wakad), "Wakad")
	require.NotNil(t, rv)

	assert.Equal(t, "Insights for: Wakad", rv.Heading())
	assert.True(t, rv.HasSummary())
	assert.Equal(t, "Prices rose 12%", rv.Summary)

	require.NotNil(t, rv.Chart)
	assert.Equal(t, "line", rv.Chart.Config.Type)
	assert.Equal(t, []string{"2021", "2022", "2023"}, rv.Chart.Config.Data.Labels)
	require.Len(t, rv.Chart.Config.Data.Datasets, 1)
	assert.Equal(t, models.Values{50, 55, 60}, rv.Chart.Config.Data.Datasets[0].Data)

	require.NotNil(t, rv.Table)
	assert.Equal(t, []string{"Locality", "Price"}, rv.Table.Columns)
	assert.Equal(t, [][]string{{"Wakad", "55"}}, rv.Table.Rows)
}

func TestBuildResult_Nil(t *testing.T) {
	assert.Nil(t, BuildResult(nil, "Wakad"))
}

func TestDisplayArea(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		typed string
		want  string
	}{
		{"first summary key", `{"summary": {"Baner": "x", "Aundh": "y"}}`, "baner", "Baner"},
		{"empty summary falls back", `{"summary": {}}`, "Hinjewadi", "Hinjewadi"},
		{"missing summary falls back", `{"rows": []}`, "Hinjewadi", "Hinjewadi"},
		{"empty key falls back", `{"summary": {"": "x"}}`, "Baner", "Baner"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayArea(decode(t, tt.body), tt.typed))
		})
	}
}

func TestBuildResult_SectionsAreIndependent(t *testing.T) {
	body := `{
		"summary": {"Baner": ""},
		"chart": {"Baner": {"years": [], "prices": []}},
		"rows": [{"a": 1}]
	}`
	rv := BuildResult(decode(t, body), "baner")
	require.NotNil(t, rv)

	assert.Equal(t, "Baner", rv.Area)
	assert.False(t, rv.HasSummary())
	assert.Nil(t, rv.Chart)
	require.NotNil(t, rv.Table)
	assert.Equal(t, [][]string{{"1"}}, rv.Table.Rows)
}

func TestBuildResult_ChartForOtherAreaOnly(t *testing.T) {
	body := `{"summary": {"Wakad": "x"}, "chart": {"Baner": {"years": [2020], "prices": [1]}}, "rows": []}`
	rv := BuildResult(decode(t, body), "Wakad")
	assert.Nil(t, rv.Chart)
	assert.Nil(t, rv.Table)
}

func TestBuildChart_Empty(t *testing.T) {
	assert.Nil(t, BuildChart(nil))
	assert.Nil(t, BuildChart(&models.PriceSeries{Years: []float64{}, Prices: []float64{1}}))
}

func TestBuildChart_Theme(t *testing.T) {
	cv := BuildChart(&models.PriceSeries{Years: []float64{2021}, Prices: []float64{5500.5}})
	require.NotNil(t, cv)
	assert.Equal(t, ChartHeight, cv.Height)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(cv.JSON), &decoded))

	ds := cv.Config.Data.Datasets[0]
	assert.Equal(t, "Average Price", ds.Label)
	assert.Equal(t, "#ff8c2b", ds.BorderColor)
	assert.Equal(t, "rgba(255, 140, 43, 0.25)", ds.BackgroundColor)
	assert.Equal(t, 0.4, ds.Tension)
	assert.False(t, cv.Config.Options.MaintainAspectRatio)
	assert.Equal(t, 12, cv.Config.Options.Layout.Padding)
	assert.Contains(t, cv.JSON, `"maintainAspectRatio":false`)
}

func TestBuildTable_HeadersFromFirstRow(t *testing.T) {
	body := `{"rows": [
		{"Locality": "Wakad", "Price": 55.0},
		{"Price": 60, "Locality": "Baner", "Extra": "ignored"},
		{"Locality": "Aundh"}
	]}`
	table := BuildTable(decode(t, body).Rows)
	require.NotNil(t, table)

	assert.Equal(t, []string{"Locality", "Price"}, table.Columns)
	assert.Equal(t, [][]string{
		{"Wakad", "55"},
		{"Baner", "60"},
		{"Aundh", "undefined"},
	}, table.Rows)
}

func TestBuildTable_Empty(t *testing.T) {
	assert.Nil(t, BuildTable(nil))
	assert.Nil(t, BuildTable([]models.Row{}))
}

func TestBuildTable_NoRowLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`{"rows": [`)
	for i := 0; i < 450; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"n": 1}`)
	}
	sb.WriteString(`]}`)

	table := BuildTable(decode(t, sb.String()).Rows)
	assert.Len(t, table.Rows, 450)
}

func TestCellString(t *testing.T) {
	body := `{"rows": [{
		"s": "text", "i": 2021, "f": 12.50, "big": 1e3, "t": true, "f2": false,
		"n": null, "arr": [1, "a"], "obj": {"k": 1},
		"holes": [1, null, 3], "nested": [[1, 2], {"k": 1}, true], "empty": [],
		"huge": 1e21, "tiny": 1e-7, "small": 0.000001, "neg": -2.5e-8
	}]}`
	row := decode(t, body).Rows[0]

	tests := map[string]string{
		"s":       "text",
		"i":       "2021",
		"f":       "12.5",
		"big":     "1000",
		"t":       "true",
		"f2":      "false",
		"n":       "null",
		"arr":     "1,a",
		"obj":     "[object Object]",
		"holes":   "1,,3",
		"nested":  "1,2,[object Object],true",
		"empty":   "",
		"huge":    "1e+21",
		"tiny":    "1e-7",
		"small":   "0.000001",
		"neg":     "-2.5e-8",
		"missing": "undefined",
	}
	for col, want := range tests {
		assert.Equal(t, want, CellString(row, col), col)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{55, "55"},
		{0.1, "0.1"},
		{123456789012345680000, "123456789012345680000"},
		{1e21, "1e+21"},
		{1.5e22, "1.5e+22"},
		{1e-6, "0.000001"},
		{1e-7, "1e-7"},
		{-1e100, "-1e+100"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.in))
	}
}

func TestBuildChart_NullsStayGaps(t *testing.T) {
	result := decode(t, `{"summary": {"Wakad": "x"}, "chart": {"Wakad": {"years": [2021, null], "prices": [null, 60]}}}`)
	rv := BuildResult(result, "Wakad")
	require.NotNil(t, rv.Chart)

	assert.Equal(t, []string{"2021", ""}, rv.Chart.Config.Data.Labels)
	assert.Contains(t, rv.Chart.JSON, `"data":[null,60]`)
}

func TestRenderResult(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderResult(&buf, tmpl, BuildResult(decode(t, wakad), "Wakad")))
	out := buf.String()

	assert.Contains(t, out, "Insights for: Wakad")
	assert.Contains(t, out, "Prices rose 12%")
	assert.Contains(t, out, "<canvas data-chart=")
	assert.Contains(t, out, "<th class=\"no-wrap\">Locality</th>")
	assert.Contains(t, out, "<th class=\"no-wrap\">Price</th>")
	assert.Contains(t, out, "<td class=\"no-wrap\">55</td>")
	assert.NotContains(t, out, NoChart)
}

func TestRenderResult_Placeholders(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderResult(&buf, tmpl, BuildResult(decode(t, `{}`), "Ghost Town")))
	out := buf.String()

	assert.Contains(t, out, "Insights for: Ghost Town")
	assert.Contains(t, out, NoSummary)
	assert.Contains(t, out, NoChart)
	assert.Contains(t, out, NoRows)
}

func TestRenderResult_NoResult(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderResult(&buf, tmpl, nil))
	assert.Contains(t, buf.String(), NoResults)
	assert.NotContains(t, buf.String(), "Insights for:")
}

func TestRenderResult_Idempotent(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	result := decode(t, wakad)

	var first, second bytes.Buffer
	require.NoError(t, RenderResult(&first, tmpl, BuildResult(result, "Wakad")))
	require.NoError(t, RenderResult(&second, tmpl, BuildResult(result, "Wakad")))
	assert.Equal(t, first.String(), second.String())
}

func TestRenderResult_EscapesCells(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	body := `{"summary": {"X": "<script>alert(1)</script>"}, "rows": [{"c": "<b>bold</b>"}]}`
	var buf bytes.Buffer
	require.NoError(t, RenderResult(&buf, tmpl, BuildResult(decode(t, body), "X")))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.NotContains(t, buf.String(), "<b>bold</b>")
}

func TestBuildChat(t *testing.T) {
	msgs := []models.ChatMessage{
		{Sender: models.SenderBot, Text: "**Fetched** insights", Timestamp: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)},
		{Sender: models.SenderUser, Text: "<i>wakad</i>"},
	}
	cv := BuildChat(msgs, true)

	assert.True(t, cv.Typing)
	require.Len(t, cv.Messages, 2)
	assert.False(t, cv.Messages[0].IsUser)
	assert.Contains(t, string(cv.Messages[0].Body), "<strong>Fetched</strong>")
	assert.Equal(t, "09:30", cv.Messages[0].Time)
	assert.True(t, cv.Messages[1].IsUser)
	assert.Equal(t, "&lt;i&gt;wakad&lt;/i&gt;", string(cv.Messages[1].Body))
}

func TestMarkdown_Sanitises(t *testing.T) {
	out := string(Markdown("hello <script>alert(1)</script> [x](javascript:alert(1))"))
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "javascript:")
}

func TestIndexTemplate(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	state := models.DashboardState{AreaInput: "Wakad", Error: "Please enter an area."}
	page := BuildPage(state, []models.ChatMessage{{Sender: models.SenderBot, Text: "hi"}}, false)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "index", page))
	out := buf.String()

	assert.Contains(t, out, `value="Wakad"`)
	assert.Contains(t, out, "Please enter an area.")
	assert.Contains(t, out, "disabled>Download")
	assert.NotContains(t, out, "Insights for:")
	assert.NotContains(t, out, "bot-bubble typing")
}

func TestStatic(t *testing.T) {
	static, err := Static()
	require.NoError(t, err)

	f, err := static.Open("styles.css")
	require.NoError(t, err)
	defer f.Close()

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
