// Package filter narrows a property catalog to the listings that match a
// search. It holds no state: the same records and criteria always produce the
// same ordered result.
package filter

import (
	"net/url"
	"strings"

	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

// Criteria are the search constraints. An empty field is no constraint.
type Criteria struct {
	// Location is matched case-insensitively as a substring of the address.
	Location string `json:"location,omitempty" yaml:"location,omitempty"`

	// Rooms must equal the bed count rendered as text.
	Rooms string `json:"rooms,omitempty" yaml:"rooms,omitempty"`

	// Area must equal the area text exactly.
	Area string `json:"area,omitempty" yaml:"area,omitempty"`
}

// ParseCriteria extracts criteria from query parameters.
func ParseCriteria(q url.Values) Criteria {
	return Criteria{
		Location: q.Get("location"),
		Rooms:    q.Get("rooms"),
		Area:     q.Get("area"),
	}
}

// IsEmpty reports whether no constraint is set.
func (c Criteria) IsEmpty() bool {
	return c.Constraints() == 0
}

// Constraints returns the number of fields that constrain the result.
func (c Criteria) Constraints() int {
	n := 0
	for _, v := range []string{c.Location, c.Rooms, c.Area} {
		if v != "" {
			n++
		}
	}
	return n
}

// Values renders the criteria as query parameters, skipping empty fields.
func (c Criteria) Values() url.Values {
	q := url.Values{}
	if c.Location != "" {
		q.Set("location", c.Location)
	}
	if c.Rooms != "" {
		q.Set("rooms", c.Rooms)
	}
	if c.Area != "" {
		q.Set("area", c.Area)
	}
	return q
}

// String implements fmt.Stringer.
func (c Criteria) String() string {
	if c.IsEmpty() {
		return "all"
	}
	return c.Values().Encode()
}

// Matches reports whether p satisfies every constraint.
func (c Criteria) Matches(p properties.Property) bool {
	if c.Location != "" && !strings.Contains(strings.ToLower(p.Address), strings.ToLower(c.Location)) {
		return false
	}
	if c.Rooms != "" && p.Rooms() != c.Rooms {
		return false
	}
	if c.Area != "" && p.Area != c.Area {
		return false
	}
	return true
}

// Apply returns the records that match c, in their original order. The result
// is always a fresh slice; records is never modified.
func Apply(records []properties.Property, c Criteria) []properties.Property {
	results := make([]properties.Property, 0, len(records))
	for _, p := range records {
		if c.Matches(p) {
			results = append(results, p.Clone())
		}
	}
	return results
}
