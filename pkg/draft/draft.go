// Package draft holds the in-progress create or edit form for a property and
// submits it to the remote catalog.
package draft

import (
	"math"
	"strconv"
	"strings"

	"github.com/dreamdwell/dreamdwell/pkg/errors"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

// Field names a scalar form field.
type Field string

// Form fields.
const (
	FieldName        Field = "name"
	FieldPrice       Field = "price"
	FieldAddress     Field = "address"
	FieldBaths       Field = "baths"
	FieldBeds        Field = "beds"
	FieldArea        Field = "area"
	FieldOwner       Field = "owner"
	FieldDescription Field = "description"
)

// Fields lists every scalar field in form order.
var Fields = []Field{
	FieldName, FieldPrice, FieldAddress, FieldBaths,
	FieldBeds, FieldArea, FieldOwner, FieldDescription,
}

// required lists the fields that must be non-empty on submit.
var required = []Field{
	FieldName, FieldPrice, FieldAddress, FieldBaths,
	FieldBeds, FieldArea, FieldOwner,
}

// ParseField returns the Field named s.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", errors.NewValidationError("field", s, "unknown field")
}

// Draft is a partially entered property. Numbers are kept as the text the
// user typed and only parsed on submit.
type Draft struct {
	Name        string
	Price       string
	Address     string
	Baths       string
	Beds        string
	Area        string
	Owner       string
	Description string
	Images      []properties.ImageRef
}

// FromProperty renders p into form text. Image entries that still hold a
// delimited list are split.
func FromProperty(p properties.Property) Draft {
	return Draft{
		Name:        p.Name,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Address:     p.Address,
		Baths:       strconv.Itoa(p.BathCount),
		Beds:        strconv.Itoa(p.BedCount),
		Area:        p.Area,
		Owner:       p.Owner,
		Description: p.Description,
		Images:      properties.NormalizeImages(p.Images),
	}
}

// Get returns the value of f.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldPrice:
		return d.Price
	case FieldAddress:
		return d.Address
	case FieldBaths:
		return d.Baths
	case FieldBeds:
		return d.Beds
	case FieldArea:
		return d.Area
	case FieldOwner:
		return d.Owner
	case FieldDescription:
		return d.Description
	}
	return ""
}

func (d *Draft) set(f Field, value string) error {
	switch f {
	case FieldName:
		d.Name = value
	case FieldPrice:
		d.Price = value
	case FieldAddress:
		d.Address = value
	case FieldBaths:
		d.Baths = value
	case FieldBeds:
		d.Beds = value
	case FieldArea:
		d.Area = value
	case FieldOwner:
		d.Owner = value
	case FieldDescription:
		d.Description = value
	default:
		return errors.NewValidationError("field", string(f), "unknown field")
	}
	return nil
}

// IsEmpty reports whether nothing has been entered.
func (d Draft) IsEmpty() bool {
	for _, f := range Fields {
		if d.Get(f) != "" {
			return false
		}
	}
	return len(d.Images) == 0
}

// Clone returns a deep copy of d.
func (d Draft) Clone() Draft {
	if d.Images != nil {
		d.Images = append([]properties.ImageRef(nil), d.Images...)
	}
	return d
}

// Validate checks required fields and numeric parsing, reporting every
// offending field at once.
func (d Draft) Validate() error {
	_, err := d.Payload()
	return err
}

// Payload validates d and builds the remote request body.
func (d Draft) Payload() (properties.Payload, error) {
	verr := &errors.ValidationError{}
	for _, f := range required {
		if strings.TrimSpace(d.Get(f)) == "" {
			verr.Add(string(f), d.Get(f), "required")
		}
	}

	price, ok := parsePrice(d.Price)
	if !ok && !verr.Has(string(FieldPrice)) {
		verr.Add(string(FieldPrice), d.Price, "must be a non-negative number")
	}
	baths, ok := parseCount(d.Baths)
	if !ok && !verr.Has(string(FieldBaths)) {
		verr.Add(string(FieldBaths), d.Baths, "must be a non-negative whole number")
	}
	beds, ok := parseCount(d.Beds)
	if !ok && !verr.Has(string(FieldBeds)) {
		verr.Add(string(FieldBeds), d.Beds, "must be a non-negative whole number")
	}
	if err := verr.OrNil(); err != nil {
		return properties.Payload{}, err
	}

	return properties.Payload{
		Name:        strings.TrimSpace(d.Name),
		Price:       price,
		Address:     strings.TrimSpace(d.Address),
		Baths:       baths,
		Beds:        beds,
		Area:        strings.TrimSpace(d.Area),
		Owner:       strings.TrimSpace(d.Owner),
		Image:       properties.EncodeImages(d.Images),
		Description: strings.TrimSpace(d.Description),
	}, nil
}

func parsePrice(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseCount(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
