package remote

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/dreamdwell/dreamdwell/internal/transport"
	"github.com/dreamdwell/dreamdwell/pkg/errors"
	"github.com/dreamdwell/dreamdwell/pkg/logging"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

// DefaultBaseURL is the API root used when none is configured.
const DefaultBaseURL = "http://localhost:1337/api/v1/en"

// Endpoint paths relative to the base URL.
const (
	listPath   = "/property/list"
	addPath    = "/property/add"
	editPath   = "/property/edit/"
	deletePath = "/property/delete/"
)

type listResponse struct {
	Data []properties.Wire `json:"data"`
}

type recordResponse struct {
	Data properties.Wire `json:"data"`
}

// HTTP is a Client backed by the property REST API.
type HTTP struct {
	transport *transport.Client
	logger    *zerolog.Logger
}

var _ Client = (*HTTP)(nil)

type httpOptions struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	auth       transport.Authenticator
	logger     *zerolog.Logger
}

// Option configures an HTTP client.
type Option func(*httpOptions)

// WithBaseURL sets the API root.
func WithBaseURL(baseURL string) Option {
	return func(o *httpOptions) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *httpOptions) {
		o.httpClient = hc
	}
}

// WithTimeout sets the per request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *httpOptions) {
		o.timeout = d
	}
}

// WithAPIKey sends key as a bearer token on every request.
func WithAPIKey(key string) Option {
	return func(o *httpOptions) {
		o.auth = transport.Bearer(key)
	}
}

// WithHeaderKey sends key in the named header on every request.
func WithHeaderKey(header, key string) Option {
	return func(o *httpOptions) {
		o.auth = transport.Header(header, key)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *httpOptions) {
		o.logger = logger
	}
}

// NewHTTP creates a Client for the property REST API.
func NewHTTP(opts ...Option) *HTTP {
	o := &httpOptions{
		baseURL: DefaultBaseURL,
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	topts := []transport.Option{
		transport.WithAuth(o.auth),
		transport.WithLogger(o.logger),
	}
	if o.httpClient != nil {
		topts = append(topts, transport.WithHTTPClient(o.httpClient))
	} else {
		topts = append(topts, transport.WithTimeout(o.timeout))
	}
	return &HTTP{
		transport: transport.New(o.baseURL, topts...),
		logger:    o.logger,
	}
}

// BaseURL returns the API root.
func (c *HTTP) BaseURL() string {
	return c.transport.BaseURL()
}

// List implements Client.
func (c *HTTP) List(ctx context.Context) ([]properties.Property, error) {
	resp, err := c.transport.Post(ctx, listPath, nil)
	if err != nil {
		return nil, errors.WrapRemote(OpList, listPath, err)
	}

	var out listResponse
	if err := transport.DecodeResponse(resp, OpList, &out); err != nil {
		return nil, err
	}

	records := make([]properties.Property, len(out.Data))
	for i, w := range out.Data {
		records[i] = w.Property()
	}
	c.logger.Debug().Int("count", len(records)).Msg("Listed properties")
	return records, nil
}

// Create implements Client.
func (c *HTTP) Create(ctx context.Context, payload properties.Payload) (properties.Property, error) {
	return c.write(ctx, OpCreate, addPath, payload)
}

// Update implements Client.
func (c *HTTP) Update(ctx context.Context, id string, payload properties.Payload) (properties.Property, error) {
	if id == "" {
		return properties.Property{}, errors.NewValidationError("id", id, "required for update")
	}
	return c.write(ctx, OpUpdate, editPath+url.PathEscape(id), payload)
}

func (c *HTTP) write(ctx context.Context, op, path string, payload properties.Payload) (properties.Property, error) {
	resp, err := c.transport.Post(ctx, path, payload)
	if err != nil {
		return properties.Property{}, errors.WrapRemote(op, path, err)
	}

	var out recordResponse
	if err := transport.DecodeResponse(resp, op, &out); err != nil {
		return properties.Property{}, err
	}

	record := out.Data.Property()
	if !record.Persisted() {
		return properties.Property{}, errors.NewRemoteError(op, path, resp.StatusCode, "response carries no property_id")
	}
	c.logger.Debug().Str("op", op).Str("property_id", record.ID).Msg("Stored property")
	return record, nil
}

// Delete implements Client. Only a 200 answer counts as success.
func (c *HTTP) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.NewValidationError("id", id, "required for delete")
	}
	path := deletePath + url.PathEscape(id)

	resp, err := c.transport.Get(ctx, path)
	if err != nil {
		return errors.WrapRemote(OpDelete, path, err)
	}
	status := resp.StatusCode
	if err := transport.DecodeResponse(resp, OpDelete, nil); err != nil {
		return err
	}
	if status != http.StatusOK {
		return errors.NewRemoteError(OpDelete, path, status, http.StatusText(status))
	}
	c.logger.Debug().Str("property_id", id).Msg("Deleted property")
	return nil
}
