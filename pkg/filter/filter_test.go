package filter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

func testCatalog() []properties.Property {
	return []properties.Property{
		{ID: "1", BedCount: 2, Address: "Main St", Area: "5"},
		{ID: "2", BedCount: 3, Address: "Oak Ave", Area: "5"},
		{ID: "3", BedCount: 2, Address: "12 MAIN Boulevard", Area: "10"},
		{ID: "4", BedCount: 1, Address: "Canal Road", Area: "1", Images: []properties.ImageRef{"a.jpg"}},
	}
}

func ids(records []properties.Property) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{name: "empty criteria", criteria: Criteria{}, want: []string{"1", "2", "3", "4"}},
		{name: "rooms", criteria: Criteria{Rooms: "2"}, want: []string{"1", "3"}},
		{name: "location case insensitive", criteria: Criteria{Location: "main"}, want: []string{"1", "3"}},
		{name: "area exact", criteria: Criteria{Area: "1"}, want: []string{"4"}},
		{name: "all constraints", criteria: Criteria{Location: "main", Rooms: "2", Area: "10"}, want: []string{"3"}},
		{name: "no match", criteria: Criteria{Rooms: "9"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(testCatalog(), tt.criteria)))
		})
	}
}

func TestApplyScenarioRooms(t *testing.T) {
	catalog := []properties.Property{
		{ID: "1", BedCount: 2, Address: "Main St", Area: "5"},
		{ID: "2", BedCount: 3, Address: "Oak Ave", Area: "5"},
	}
	got := Apply(catalog, Criteria{Rooms: "2"})
	assert.Equal(t, []properties.Property{catalog[0]}, got)
}

func TestApplyIdentity(t *testing.T) {
	catalog := testCatalog()
	assert.Equal(t, catalog, Apply(catalog, Criteria{}))
	assert.Empty(t, Apply(nil, Criteria{}))
}

func TestApplyNarrowing(t *testing.T) {
	catalog := testCatalog()
	base := []Criteria{
		{},
		{Location: "main"},
		{Rooms: "2"},
		{Area: "5"},
	}

	for _, f1 := range base {
		wider := ids(Apply(catalog, f1))
		for _, f2 := range []Criteria{
			{Location: "main", Rooms: f1.Rooms, Area: f1.Area},
			{Location: f1.Location, Rooms: "2", Area: f1.Area},
			{Location: f1.Location, Rooms: f1.Rooms, Area: "5"},
		} {
			assert.Subset(t, wider, ids(Apply(catalog, f2)), "%s should narrow %s", f2, f1)
		}
	}
}

func TestApplyDoesNotMutate(t *testing.T) {
	catalog := testCatalog()
	before := properties.CloneAll(catalog)

	got := Apply(catalog, Criteria{Area: "1"})
	got[0].Images[0] = "changed.jpg"
	got[0].Address = "changed"

	assert.Equal(t, before, catalog)
}

func TestCriteria(t *testing.T) {
	c := ParseCriteria(url.Values{"location": {"Gulberg"}, "rooms": {"3"}})
	assert.Equal(t, Criteria{Location: "Gulberg", Rooms: "3"}, c)
	assert.Equal(t, 2, c.Constraints())
	assert.False(t, c.IsEmpty())
	assert.Equal(t, "location=Gulberg&rooms=3", c.String())

	assert.True(t, Criteria{}.IsEmpty())
	assert.Equal(t, "all", Criteria{}.String())
}
