// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"
	"strings"

	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// Row pairs a record with its position in the catalog.
type Row struct {
	Index    int
	Property properties.Property
}

// PropertiesToTableData converts catalog rows to table format. The wide
// layout adds the owner, the description and every image.
func PropertiesToTableData(rows []Row, wide bool) Data {
	headers := []string{"#", "ID", "Name", "Price", "Address", "Beds", "Baths", "Area", "Images"}
	align := []Align{AlignRight, AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight}
	if wide {
		headers = append(headers, "Owner", "Description")
		align = append(align, AlignLeft, AlignLeft)
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		p := r.Property
		row := []string{
			strconv.Itoa(r.Index),
			orDash(p.ID),
			p.Name,
			FormatPrice(p.Price),
			p.Address,
			strconv.Itoa(p.BedCount),
			strconv.Itoa(p.BathCount),
			orDash(p.Area),
			strconv.Itoa(len(p.Images)),
		}
		if wide {
			row = append(row, orDash(p.Owner), orDash(Truncate(p.Description, 60)))
		}
		out = append(out, row)
	}

	return Data{Headers: headers, Rows: out, ColumnAlignment: align}
}

// PropertyDetails converts a single record to a key/value table.
func PropertyDetails(p properties.Property) Data {
	rows := [][]string{
		{"ID", orDash(p.ID)},
		{"Name", p.Name},
		{"Price", FormatPrice(p.Price)},
		{"Address", p.Address},
		{"Beds", strconv.Itoa(p.BedCount)},
		{"Baths", strconv.Itoa(p.BathCount)},
		{"Area", orDash(p.Area)},
		{"Owner", orDash(p.Owner)},
		{"Description", orDash(p.Description)},
	}
	for i, img := range p.Images {
		rows = append(rows, []string{"Image " + strconv.Itoa(i), img.String()})
	}
	return Data{Headers: []string{"Field", "Value"}, Rows: rows}
}

// FormatPrice renders a price with thousands separators and two decimals
// when the price is fractional.
func FormatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', -1, 64)
	whole, frac, hasFrac := strings.Cut(s, ".")
	if hasFrac {
		s = strconv.FormatFloat(price, 'f', 2, 64)
		whole, frac, _ = strings.Cut(s, ".")
	}

	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if hasFrac {
		b.WriteString("." + frac)
	}
	return b.String()
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Rows pairs each record of subset with its position in catalog. subset must
// keep catalog order, as a filtered view does.
func Rows(catalog, subset []properties.Property) []Row {
	rows := make([]Row, 0, len(subset))
	next := 0
	for _, p := range subset {
		index := -1
		for i := next; i < len(catalog); i++ {
			if catalog[i].ID == p.ID {
				index = i
				next = i + 1
				break
			}
		}
		rows = append(rows, Row{Index: index, Property: p})
	}
	return rows
}
