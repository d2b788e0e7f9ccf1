package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamdwell/dreamdwell/pkg/errors"
	"github.com/dreamdwell/dreamdwell/pkg/logging"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

func newTestHTTP(t *testing.T, handler http.HandlerFunc, opts ...Option) *HTTP {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append([]Option{
		WithBaseURL(srv.URL + "/api/v1/en"),
		WithHTTPClient(srv.Client()),
		WithLogger(logging.NewNopLogger()),
	}, opts...)
	return NewHTTP(opts...)
}

func TestHTTPList(t *testing.T) {
	c := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/en/property/list", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[
			{"property_id":1,"property_name":"Loft","property_price":"1200","property_address":"12 Oak St, Springfield",
			 "property_baths":1,"property_beds":2,"property_area":85,"property_owner":"Ana",
			 "property_image":"https://cdn/a.jpg,https://cdn/b.jpg","property_description":"Bright"},
			{"property_id":"2","property_name":"Villa","property_price":900000,"property_address":"1 Sea Rd",
			 "property_baths":3,"property_beds":5,"property_area":"400","property_owner":"Bo","property_image":["https://cdn/c.jpg"]}
		]}`))
	})

	records, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "Loft", records[0].Name)
	assert.Equal(t, 1200.0, records[0].Price)
	assert.Equal(t, 2, records[0].BedCount)
	assert.Equal(t, "85", records[0].Area)
	assert.Equal(t, []properties.ImageRef{"https://cdn/a.jpg", "https://cdn/b.jpg"}, records[0].Images)

	assert.Equal(t, "2", records[1].ID)
	assert.Equal(t, []properties.ImageRef{"https://cdn/c.jpg"}, records[1].Images)
}

func TestHTTPListEmpty(t *testing.T) {
	c := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	records, err := c.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestHTTPCreate(t *testing.T) {
	var body map[string]any
	c := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/en/property/add", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"data":{"property_id":7,"property_name":"Loft","property_price":1200,
			"property_address":"12 Oak St","property_baths":1,"property_beds":2,"property_area":"85",
			"property_owner":"Ana","property_image":"a.jpg,b.jpg"}}`))
	}, WithAPIKey("k"))

	payload := properties.Payload{
		Name: "Loft", Price: 1200, Address: "12 Oak St", Baths: 1, Beds: 2,
		Area: "85", Owner: "Ana", Image: "a.jpg,b.jpg",
	}
	record, err := c.Create(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, "7", record.ID)
	assert.Equal(t, []properties.ImageRef{"a.jpg", "b.jpg"}, record.Images)
	assert.Equal(t, "Loft", body["property_name"])
	assert.Equal(t, "a.jpg,b.jpg", body["property_image"])
	assert.InDelta(t, 1200.0, body["property_price"], 0.001)
	assert.Contains(t, body, "property_description")
}

func TestHTTPListRejectsFractionalCount(t *testing.T) {
	c := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"property_id":1,"property_name":"Loft","property_beds":2.9}]}`))
	})

	records, err := c.List(context.Background())
	assert.True(t, errors.IsRemote(err))
	assert.Nil(t, records)
}

func TestHTTPCreateWithoutID(t *testing.T) {
	c := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"property_name":"Loft"}}`))
	})

	_, err := c.Create(context.Background(), properties.Payload{Name: "Loft"})
	assert.True(t, errors.IsRemote(err))
}

func TestHTTPUpdate(t *testing.T) {
	c := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/en/property/edit/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"property_id":"42","property_name":"Renamed"}}`))
	})

	record, err := c.Update(context.Background(), "42", properties.Payload{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "42", record.ID)
	assert.Equal(t, "Renamed", record.Name)

	_, err = c.Update(context.Background(), "", properties.Payload{})
	assert.True(t, errors.IsValidationError(err))
}

func TestHTTPDelete(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "ok", status: http.StatusOK},
		{name: "no content is not success", status: http.StatusNoContent, wantErr: true},
		{name: "not found", status: http.StatusNotFound, wantErr: true},
		{name: "server error", status: http.StatusInternalServerError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			c := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/v1/en/property/delete/9", r.URL.Path)
				w.WriteHeader(tt.status)
			})

			err := c.Delete(context.Background(), "9")
			assert.Equal(t, 1, calls)
			if tt.wantErr {
				assert.True(t, errors.IsRemote(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestHTTPRemoteErrors(t *testing.T) {
	c := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.List(context.Background())
	assert.True(t, errors.IsRemote(err))
	assert.True(t, errors.IsRateLimited(err))
}

func TestHTTPTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	c := NewHTTP(WithBaseURL(baseURL), WithLogger(logging.NewNopLogger()))
	_, err := c.List(context.Background())
	require.Error(t, err)

	var rerr *errors.RemoteError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, OpList, rerr.Operation)
	assert.Zero(t, rerr.StatusCode)
}

func TestNewHTTPDefaults(t *testing.T) {
	c := NewHTTP()
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
}
