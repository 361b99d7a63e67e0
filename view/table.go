package view

import (
	"strconv"
	"strings"

	"estateinsights/models"

	"github.com/tidwall/gjson"
)

// TableView is the dataset grid. Columns come from the first row only.
type TableView struct {
	Columns []string
	Rows    [][]string
}

// BuildTable lays out every row under the first row's columns. It returns
// nil for an empty row-set. There is no row limit here; the backend truncates.
func BuildTable(rows []models.Row) *TableView {
	if len(rows) == 0 {
		return nil
	}

	columns := rows[0].Columns()
	table := &TableView{
		Columns: columns,
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		cells := make([]string, 0, len(columns))
		for _, col := range columns {
			cells = append(cells, CellString(row, col))
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}

// CellString is the displayed text of a row's column, coerced the way a
// browser's String() would: strings as-is, numbers in shortest form, "null"
// for null, "undefined" for a key the row lacks, arrays joined with commas
// and objects as "[object Object]".
func CellString(row models.Row, column string) string {
	cell, ok := row.Get(column)
	if !ok {
		return "undefined"
	}

	switch cell.Type {
	case "String":
		return cell.Str
	case "Null":
		return "null"
	default:
		return jsString(gjson.Parse(cell.Raw))
	}
}

// jsString stringifies a JSON value. Inside arrays null becomes "".
func jsString(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		f, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			return v.Raw
		}
		return formatNumber(f)
	case gjson.True:
		return "true"
	case gjson.False:
		return "false"
	case gjson.Null:
		return "null"
	}
	if !v.IsArray() {
		return "[object Object]"
	}

	elems := v.Array()
	parts := make([]string, 0, len(elems))
	for _, e := range elems {
		if e.Type == gjson.Null {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, jsString(e))
	}
	return strings.Join(parts, ",")
}
