package dreamdwell

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/dreamdwell/dreamdwell/pkg/errors"
	"github.com/dreamdwell/dreamdwell/pkg/logging"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
	"github.com/dreamdwell/dreamdwell/pkg/remote"
	"github.com/dreamdwell/dreamdwell/pkg/session"
)

// options holds the configuration of a Client.
type options struct {
	remote         remote.Client
	baseURL        string
	apiKey         *string
	timeout        time.Duration
	session        *session.Session
	idToken        string
	records        []properties.Property
	signInRequired bool
	logger         *zerolog.Logger
}

func defaults() *options {
	return &options{
		baseURL:        remote.DefaultBaseURL,
		signInRequired: true,
		logger:         logging.Default(),
	}
}

// Option is a function that configures a Client.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithRemote sets the store of record. It takes precedence over
// WithRemoteServer.
func WithRemote(client remote.Client) Option {
	return func(o *options) error {
		if client == nil {
			return errors.NewConfigError("remote", "client is nil", nil)
		}
		o.remote = client
		return nil
	}
}

// WithRemoteServer configures the property API root. An api key can be
// provided for bearer authentication, otherwise use nil.
func WithRemoteServer(url string, apiKey *string) Option {
	return func(o *options) error {
		if url == "" {
			return errors.NewConfigError("remote", "base url is empty", nil)
		}
		o.baseURL = url
		o.apiKey = apiKey
		return nil
	}
}

// WithTimeout bounds each remote call.
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.NewConfigError("remote", "timeout must not be negative", nil)
		}
		o.timeout = d
		return nil
	}
}

// WithSession uses an existing session.
func WithSession(s *session.Session) Option {
	return func(o *options) error {
		o.session = s
		return nil
	}
}

// WithIDToken signs the session in with an identity provider token.
func WithIDToken(token string) Option {
	return func(o *options) error {
		o.idToken = token
		return nil
	}
}

// WithInitialRecords seeds the catalog before the first Sync.
func WithInitialRecords(records []properties.Property) Option {
	return func(o *options) error {
		o.records = records
		return nil
	}
}

// WithSignInRequired sets whether create, edit and delete require a signed
// in identity. Defaults to true.
func WithSignInRequired(required bool) Option {
	return func(o *options) error {
		o.signInRequired = required
		return nil
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}
