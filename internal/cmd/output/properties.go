package output

import (
	"io"

	"github.com/dreamdwell/dreamdwell/internal/cmd/table"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

// FormatProperties writes catalog rows in the requested format. Structured
// formats carry the catalog index alongside each record.
func FormatProperties(w io.Writer, rows []table.Row, format Format) error {
	switch {
	case format.IsTable():
		return NewFormatter(FormatTable).Format(w, table.PropertiesToTableData(rows, format == FormatWide))
	case format == FormatMarkdown:
		return NewFormatter(FormatMarkdown).Format(w, table.PropertiesToTableData(rows, true))
	}

	type indexed struct {
		Index    int                 `json:"index" yaml:"index"`
		Property properties.Property `json:"property" yaml:"property"`
	}
	out := make([]indexed, len(rows))
	for i, r := range rows {
		out[i] = indexed{Index: r.Index, Property: r.Property}
	}
	return NewFormatter(format).Format(w, out)
}

// FormatProperty writes a single record.
func FormatProperty(w io.Writer, p properties.Property, format Format) error {
	switch {
	case format.IsTable():
		return NewFormatter(FormatTable).Format(w, table.PropertyDetails(p))
	case format == FormatMarkdown:
		return writePropertyMarkdown(w, p)
	}
	return NewFormatter(format).Format(w, p)
}
