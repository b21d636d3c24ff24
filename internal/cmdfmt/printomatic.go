package cmdfmt

import (
	"fmt"
	"os"

	"github.com/fsentry/fsentry/pkg/config"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// printer is satisfied by both the go-pretty table writer and the jsonPrinter so commands don't
// need to care how their output is eventually rendered.
type printer interface {
	SetColumnConfigs(configs []table.ColumnConfig)
	AppendRow(row table.Row, configs ...table.RowConfig)
	Render() string
}

// Printomatic accumulates rows and renders them as a table, JSON, or pretty JSON depending on the
// global output flags. Columns in allColumns but not in defaultColumns are hidden unless --debug
// is set.
type Printomatic struct {
	columns []table.ColumnConfig
	printer printer
	rows    int
}

func NewPrintomatic(allColumns []string, defaultColumns []string) Printomatic {
	visible := make(map[string]bool, len(defaultColumns))
	for _, col := range defaultColumns {
		visible[col] = true
	}
	debug := viper.GetBool(config.DebugKey)

	columns := make([]table.ColumnConfig, 0, len(allColumns))
	for i, col := range allColumns {
		columns = append(columns, table.ColumnConfig{
			Name:   col,
			Number: i + 1,
			Hidden: !debug && !visible[col],
		})
	}

	p := Printomatic{columns: columns}
	p.printer = p.newPrinter()
	p.printer.SetColumnConfigs(columns)
	return p
}

func (p *Printomatic) newPrinter() printer {
	switch {
	case viper.GetBool(config.PrintJsonPrettyKey):
		return newJSONPrinter(true)
	case viper.GetBool(config.PrintJsonKey):
		return newJSONPrinter(false)
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		tw.SetAllowedRowLength(width)
	}
	header := make(table.Row, 0, len(p.columns))
	for _, col := range p.columns {
		header = append(header, col.Name)
	}
	tw.AppendHeader(header)
	return tw
}

// AddItem appends a row. The number of values must match the number of columns the Printomatic was
// created with, including hidden ones.
func (p *Printomatic) AddItem(values ...any) {
	if len(values) != len(p.columns) {
		panic(fmt.Sprintf("unable to print row, the number of values %d does not match the number of columns %d (this is likely a bug)", len(values), len(p.columns)))
	}
	row := make(table.Row, 0, len(values))
	row = append(row, values...)
	p.printer.AppendRow(row)
	p.rows++
}

// PrintRemaining renders any buffered rows to stdout and resets the Printomatic so it can be
// reused. Nothing is printed when no rows were added.
func (p *Printomatic) PrintRemaining() {
	if p.rows == 0 {
		return
	}
	fmt.Println(p.printer.Render())
	p.rows = 0
	p.printer = p.newPrinter()
	p.printer.SetColumnConfigs(p.columns)
}

// Printf prints informational text to stdout alongside any rendered tables.
func Printf(format string, a ...any) {
	fmt.Printf(format, a...)
}
