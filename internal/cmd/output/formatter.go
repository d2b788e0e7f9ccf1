// Package output provides formatters for command output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dreamdwell/dreamdwell/internal/cmd/table"
	"github.com/dreamdwell/dreamdwell/pkg/errors"
)

// Format names an output encoding selectable with --output.
type Format string

// Supported formats. Wide is the table plus secondary columns.
const (
	FormatTable    Format = "table"
	FormatWide     Format = "wide"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// IsTable reports whether f renders a table.
func (f Format) IsTable() bool {
	return f == FormatTable || f == FormatWide || f == ""
}

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc allows functions to implement Formatter.
type FormatterFunc func(io.Writer, any) error

// Format implements the Formatter interface.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

var formatters = map[Format]Formatter{
	FormatJSON:     FormatterFunc(writeJSON),
	FormatYAML:     FormatterFunc(writeYAML),
	FormatMarkdown: FormatterFunc(writeMarkdown),
}

// NewFormatter returns the formatter for format. Table, wide and unknown
// formats render a table.
func NewFormatter(format Format) Formatter {
	if f, ok := formatters[format]; ok {
		return f
	}
	return FormatterFunc(writeTable)
}

func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func writeYAML(w io.Writer, data any) error {
	out, err := yaml.MarshalWithOptions(data, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return errors.WrapParse("yaml", "output", err)
	}
	_, err = w.Write(out)
	return err
}

// writeTable lays out values that are not table.Data by reflection and
// falls back to JSON when that fails.
func writeTable(w io.Writer, data any) error {
	d, ok := data.(table.Data)
	if !ok {
		d, ok = toTableData(data)
	}
	if !ok {
		return writeJSON(w, data)
	}
	return render(w, d)
}

func render(w io.Writer, data table.Data) error {
	config := tablewriter.Config{}
	if len(data.ColumnAlignment) > 0 {
		align := make([]tw.Align, len(data.ColumnAlignment))
		for i, a := range data.ColumnAlignment {
			switch a {
			case table.AlignLeft:
				align[i] = tw.AlignLeft
			case table.AlignCenter:
				align[i] = tw.AlignCenter
			case table.AlignRight:
				align[i] = tw.AlignRight
			default:
				align[i] = tw.Skip
			}
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: align}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}

	t := tablewriter.NewTable(w, tablewriter.WithConfig(config))
	if len(data.Headers) > 0 {
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		t.Header(headers...)
	}
	for _, row := range data.Rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		if err := t.Append(cells...); err != nil {
			return err
		}
	}
	return t.Render()
}

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	// pipes and redirects get JSON
	return FormatJSON
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatWide, FormatMarkdown, "":
		return format, nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", errors.NewValidationError("format", s, "must be one of: table, json, yaml, wide, markdown")
}

// toTableData lays out a struct as a key/value table or a slice of structs as
// one row per element, titling headers from json tags.
func toTableData(data any) (table.Data, bool) {
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return table.Data{}, false
		}
		v = v.Elem()
	}

	switch {
	case v.Kind() == reflect.Struct:
		rows := [][]string{}
		for i, name := range columnNames(v.Type()) {
			if name == "" {
				continue
			}
			rows = append(rows, []string{name, fmt.Sprintf("%v", v.Field(i).Interface())})
		}
		return table.Data{Headers: []string{"Field", "Value"}, Rows: rows}, true

	case v.Kind() == reflect.Slice && v.Len() > 0 && v.Index(0).Kind() == reflect.Struct:
		names := columnNames(v.Index(0).Type())
		headers := []string{}
		for _, name := range names {
			if name != "" {
				headers = append(headers, name)
			}
		}
		rows := make([][]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			row := []string{}
			for j, name := range names {
				if name != "" {
					row = append(row, fmt.Sprintf("%v", elem.Field(j).Interface()))
				}
			}
			rows = append(rows, row)
		}
		return table.Data{Headers: headers, Rows: rows}, true
	}
	return table.Data{}, false
}

// columnNames returns a title per field, "" for fields that are skipped.
func columnNames(t reflect.Type) []string {
	caser := cases.Title(language.English)
	names := make([]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		switch tag {
		case "-":
			continue
		case "":
			names[i] = field.Name
		default:
			names[i] = caser.String(strings.ReplaceAll(tag, "_", " "))
		}
	}
	return names
}

// Resolve validates s and falls back to DetectFormat when it is empty.
func Resolve(s string) (Format, error) {
	format, err := ParseFormat(s)
	if err != nil {
		return "", err
	}
	if format == "" {
		return DetectFormat(""), nil
	}
	return format, nil
}
