package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

func TestFormatPrice(t *testing.T) {
	tests := map[float64]string{
		0:         "0",
		950:       "950",
		1200:      "1,200",
		125000.5:  "125,000.50",
		1234567.0: "1,234,567",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatPrice(in), "price %v", in)
	}
}

func TestPropertiesToTableData(t *testing.T) {
	rows := []Row{
		{Index: 2, Property: properties.Property{ID: "7", Name: "Loft", Price: 1200, Address: "12 Oak St",
			BedCount: 2, BathCount: 1, Area: "85", Owner: "Ana", Images: []properties.ImageRef{"a.jpg", "b.jpg"}}},
	}

	data := PropertiesToTableData(rows, false)
	assert.Len(t, data.Headers, len(data.ColumnAlignment))
	assert.Equal(t, []string{"2", "7", "Loft", "1,200", "12 Oak St", "2", "1", "85", "2"}, data.Rows[0])

	wide := PropertiesToTableData(rows, true)
	assert.Len(t, wide.Headers, len(wide.ColumnAlignment))
	assert.Equal(t, []string{"Ana", "-"}, wide.Rows[0][9:])
}

func TestPropertyDetails(t *testing.T) {
	data := PropertyDetails(properties.Property{Name: "Loft", Images: []properties.ImageRef{"a.jpg"}})
	assert.Equal(t, []string{"ID", "-"}, data.Rows[0])
	assert.Equal(t, []string{"Image 0", "a.jpg"}, data.Rows[len(data.Rows)-1])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
}

func TestRows(t *testing.T) {
	catalog := []properties.Property{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}}
	rows := Rows(catalog, []properties.Property{{ID: "2"}, {ID: "4"}})

	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, 3, rows[1].Index)
	assert.Empty(t, Rows(catalog, nil))
}
