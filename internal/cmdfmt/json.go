package cmdfmt

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// jsonPrinter renders appended rows as a JSON array of objects keyed by column name. Hidden
// columns are dropped from the objects so JSON output carries the same fields the table would
// have shown.
type jsonPrinter struct {
	keys   map[int]string // row index -> JSON key, visible columns only
	width  int            // total number of columns, including hidden ones
	rows   []map[string]any
	pretty bool
}

func newJSONPrinter(pretty bool) *jsonPrinter {
	return &jsonPrinter{pretty: pretty}
}

func (p *jsonPrinter) SetColumnConfigs(configs []table.ColumnConfig) {
	p.width = len(configs)
	p.keys = make(map[int]string, len(configs))
	for i, col := range configs {
		if !col.Hidden {
			p.keys[i] = col.Name
		}
	}
}

func (p *jsonPrinter) AppendRow(row table.Row, _ ...table.RowConfig) {
	if len(row) != p.width {
		panic(fmt.Sprintf("row has %d values but %d columns are configured (this is a bug)", len(row), p.width))
	}
	item := make(map[string]any, len(p.keys))
	for i, key := range p.keys {
		item[key] = row[i]
	}
	p.rows = append(p.rows, item)
}

func (p *jsonPrinter) Render() string {
	rows := p.rows
	if rows == nil {
		// An empty array is friendlier to scripts than null.
		rows = []map[string]any{}
	}
	var out []byte
	var err error
	if p.pretty {
		out, err = json.MarshalIndent(rows, "", "  ")
	} else {
		out, err = json.Marshal(rows)
	}
	if err != nil {
		panic("rows could not be marshalled to json: " + err.Error())
	}
	return string(out)
}
