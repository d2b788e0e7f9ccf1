package properties

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/dreamdwell/dreamdwell/pkg/errors"
)

// Wire is a property record as the remote property API serializes it.
type Wire struct {
	ID          Text      `json:"property_id,omitempty"`
	Name        string    `json:"property_name"`
	Price       Number    `json:"property_price"`
	Address     string    `json:"property_address"`
	Baths       Count     `json:"property_baths"`
	Beds        Count     `json:"property_beds"`
	Area        Text      `json:"property_area"`
	Owner       string    `json:"property_owner"`
	Image       ImageList `json:"property_image"`
	Description string    `json:"property_description"`
}

// Property converts the wire record into the canonical model.
func (w Wire) Property() Property {
	return Property{
		ID:          string(w.ID),
		Name:        w.Name,
		Price:       float64(w.Price),
		Address:     w.Address,
		BathCount:   int(w.Baths),
		BedCount:    int(w.Beds),
		Area:        string(w.Area),
		Owner:       w.Owner,
		Description: w.Description,
		Images:      []ImageRef(w.Image),
	}
}

// Payload is the request body for the add and edit endpoints.
type Payload struct {
	Name        string  `json:"property_name"`
	Price       float64 `json:"property_price"`
	Address     string  `json:"property_address"`
	Baths       int     `json:"property_baths"`
	Beds        int     `json:"property_beds"`
	Area        string  `json:"property_area"`
	Owner       string  `json:"property_owner"`
	Image       string  `json:"property_image"`
	Description string  `json:"property_description"`
}

// Payload builds the remote request body for p. Images are joined with
// ImageDelimiter.
func (p Property) Payload() Payload {
	return Payload{
		Name:        p.Name,
		Price:       p.Price,
		Address:     p.Address,
		Baths:       p.BathCount,
		Beds:        p.BedCount,
		Area:        p.Area,
		Owner:       p.Owner,
		Image:       EncodeImages(p.Images),
		Description: p.Description,
	}
}

// Property converts a payload back into an unsaved record.
func (pl Payload) Property() Property {
	return Property{
		Name:        pl.Name,
		Price:       pl.Price,
		Address:     pl.Address,
		BathCount:   pl.Baths,
		BedCount:    pl.Beds,
		Area:        pl.Area,
		Owner:       pl.Owner,
		Description: pl.Description,
		Images:      DecodeImages(pl.Image),
	}
}

// ToWire converts p into the remote representation.
func ToWire(p Property) Wire {
	return Wire{
		ID:          Text(p.ID),
		Name:        p.Name,
		Price:       Number(p.Price),
		Address:     p.Address,
		Baths:       Count(p.BathCount),
		Beds:        Count(p.BedCount),
		Area:        Text(p.Area),
		Owner:       p.Owner,
		Image:       ImageList(p.Images),
		Description: p.Description,
	}
}

// Text accepts either a JSON string or a JSON number and keeps its text.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.WrapParse("json", "text field", err)
		}
		*t = Text(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return errors.WrapParse("json", "text field", err)
		}
		*t = Text(n.String())
	}
	return nil
}

// Number is a non-negative amount sent as either a JSON number or a numeric
// string.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	f, err := parseAmount(data, "number field")
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Count is a non-negative whole number sent as either a JSON number or a
// numeric string. Fractions are rejected rather than truncated.
type Count int

// UnmarshalJSON implements json.Unmarshaler.
func (c *Count) UnmarshalJSON(data []byte) error {
	f, err := parseAmount(data, "count field")
	if err != nil {
		return err
	}
	if f != math.Trunc(f) || f > math.MaxInt32 {
		return errors.WrapParse("json", "count field",
			errors.NewValidationError("count", strconv.FormatFloat(f, 'f', -1, 64), "must be a whole number"))
	}
	*c = Count(f)
	return nil
}

// parseAmount reads a finite, non-negative number. Null and blank read as 0.
func parseAmount(data []byte, what string) (float64, error) {
	var t Text
	if err := t.UnmarshalJSON(data); err != nil {
		return 0, err
	}
	s := strings.TrimSpace(string(t))
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.WrapParse("json", what, err)
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.WrapParse("json", what,
			errors.NewValidationError(what, s, "must be a finite non-negative number"))
	}
	return f, nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(n))
}

// ImageList is the property_image field: a single value, a delimited string,
// or a JSON array, always held as an ordered sequence.
type ImageList []ImageRef

// UnmarshalJSON implements json.Unmarshaler.
func (l *ImageList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*l = ImageList{}
	case len(data) > 0 && data[0] == '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return errors.WrapParse("json", "property_image", err)
		}
		refs := make([]ImageRef, len(items))
		for i, item := range items {
			refs[i] = ImageRef(item)
		}
		*l = ImageList(NormalizeImages(refs))
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.WrapParse("json", "property_image", err)
		}
		*l = ImageList(DecodeImages(s))
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l ImageList) MarshalJSON() ([]byte, error) {
	return json.Marshal(EncodeImages(l))
}
