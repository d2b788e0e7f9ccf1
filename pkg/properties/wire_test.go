package properties

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamdwell/dreamdwell/pkg/errors"
)

func TestWireDecode(t *testing.T) {
	body := `{
		"property_id": 7,
		"property_name": "Canal View",
		"property_price": "125000.5",
		"property_address": "12 Main St, Lahore",
		"property_baths": 2,
		"property_beds": "3",
		"property_area": 5,
		"property_owner": "Ayesha",
		"property_image": "a.jpg,b.jpg",
		"property_description": "Corner plot"
	}`

	var w Wire
	require.NoError(t, json.Unmarshal([]byte(body), &w))

	p := w.Property()
	assert.Equal(t, "7", p.ID)
	assert.Equal(t, 125000.5, p.Price)
	assert.Equal(t, 2, p.BathCount)
	assert.Equal(t, 3, p.BedCount)
	assert.Equal(t, "5", p.Area)
	assert.Equal(t, []ImageRef{"a.jpg", "b.jpg"}, p.Images)
	assert.True(t, p.Persisted())
}

func TestWireImageShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []ImageRef
	}{
		{name: "null", raw: `null`, want: []ImageRef{}},
		{name: "single", raw: `"a.jpg"`, want: []ImageRef{"a.jpg"}},
		{name: "array", raw: `["a.jpg","b.jpg,c.jpg"]`, want: []ImageRef{"a.jpg", "b.jpg", "c.jpg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l ImageList
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &l))
			assert.Equal(t, tt.want, []ImageRef(l))
		})
	}
}

func TestWireRejectsBadNumber(t *testing.T) {
	var w Wire
	err := json.Unmarshal([]byte(`{"property_price":"lots"}`), &w)
	assert.Error(t, err)
}

func TestWireRejectsOutOfRangeNumbers(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "fractional beds", body: `{"property_beds":2.9}`},
		{name: "fractional baths as text", body: `{"property_baths":"1.5"}`},
		{name: "negative baths", body: `{"property_baths":-3}`},
		{name: "negative price", body: `{"property_price":"-5"}`},
		{name: "NaN price", body: `{"property_price":"NaN"}`},
		{name: "infinite price", body: `{"property_price":"Inf"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w Wire
			err := json.Unmarshal([]byte(tt.body), &w)
			var perr *errors.ParseError
			assert.True(t, errors.As(err, &perr), "got %v", err)
		})
	}
}

func TestWireAcceptsWholeFloats(t *testing.T) {
	var w Wire
	require.NoError(t, json.Unmarshal([]byte(`{"property_beds":3.0,"property_baths":"2","property_price":0}`), &w))
	p := w.Property()
	assert.Equal(t, 3, p.BedCount)
	assert.Equal(t, 2, p.BathCount)
	assert.Zero(t, p.Price)
}

func TestPayload(t *testing.T) {
	p := Property{
		Name:      "Garden House",
		Price:     99,
		Address:   "Oak Ave",
		BathCount: 1,
		BedCount:  2,
		Area:      "10",
		Owner:     "Bilal",
		Images:    []ImageRef{"a.jpg", "b.jpg"},
	}

	raw, err := json.Marshal(p.Payload())
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "a.jpg,b.jpg", fields["property_image"])
	assert.Equal(t, float64(2), fields["property_beds"])
	assert.Equal(t, "10", fields["property_area"])
	assert.NotContains(t, fields, "property_id")

	assert.Equal(t, p, p.Payload().Property())
}

func TestToWire(t *testing.T) {
	p := Property{ID: "3", Name: "Loft", Price: 10, Area: "1", Images: []ImageRef{"x.jpg"}}

	raw, err := json.Marshal(ToWire(p))
	require.NoError(t, err)

	var back Wire
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, p, back.Property())
}

func TestClone(t *testing.T) {
	p := Property{ID: "1", Images: []ImageRef{"a.jpg"}}
	c := p.Clone()
	c.Images[0] = "b.jpg"
	assert.Equal(t, ImageRef("a.jpg"), p.Images[0])

	assert.Nil(t, CloneAll(nil))
	assert.Len(t, CloneAll([]Property{p, p}), 2)
}

func TestPropertyEqual(t *testing.T) {
	a := Property{ID: "1", Name: "Loft"}
	b := Property{ID: "1", Name: "Loft", Images: []ImageRef{}}
	assert.True(t, a.Equal(b))

	b.Images = []ImageRef{"a.jpg"}
	assert.False(t, a.Equal(b))

	c := a
	c.Price = 1
	assert.False(t, a.Equal(c))
}
