// Package properties defines the property listing record shared by every
// catalog component, and the codecs that translate it to and from the
// remote property API.
package properties

import (
	"slices"
	"strconv"
)

// Property is one real-estate listing.
//
// ID is assigned by the remote store and is empty for records that have not
// been persisted yet. Images are kept in display order.
type Property struct {
	ID          string     `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string     `json:"name" yaml:"name"`
	Price       float64    `json:"price" yaml:"price"`
	Address     string     `json:"address" yaml:"address"`
	BathCount   int        `json:"bath_count" yaml:"bath_count"`
	BedCount    int        `json:"bed_count" yaml:"bed_count"`
	Area        string     `json:"area" yaml:"area"`
	Owner       string     `json:"owner" yaml:"owner"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Images      []ImageRef `json:"images,omitempty" yaml:"images,omitempty"`
}

// Persisted reports whether the remote store has assigned an ID.
func (p Property) Persisted() bool {
	return p.ID != ""
}

// Clone returns a copy that shares no slices with p.
func (p Property) Clone() Property {
	p.Images = slices.Clone(p.Images)
	return p
}

// Rooms returns the bed count as the text the search form compares against.
func (p Property) Rooms() string {
	return strconv.Itoa(p.BedCount)
}

// Cover returns the first image, or the empty ref when there is none.
func (p Property) Cover() ImageRef {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// CloneAll copies a record list so the result shares no memory with records.
func CloneAll(records []Property) []Property {
	if records == nil {
		return nil
	}
	out := make([]Property, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// Equal reports whether p and other hold the same values. A nil and an empty
// image list are equal.
func (p Property) Equal(other Property) bool {
	return p.ID == other.ID &&
		p.Name == other.Name &&
		p.Price == other.Price &&
		p.Address == other.Address &&
		p.BathCount == other.BathCount &&
		p.BedCount == other.BedCount &&
		p.Area == other.Area &&
		p.Owner == other.Owner &&
		p.Description == other.Description &&
		slices.Equal(p.Images, other.Images)
}
