// Package dreamdwell provides the main entry point for the dreamdwell property
// catalog. It keeps the listings of a session in memory, derives the subset
// shown to the visitor from the active search, and reconciles local create,
// edit and delete actions with the remote store of record.
//
// Example usage:
//
//	dd, err := dreamdwell.New(
//	    dreamdwell.WithRemoteServer("http://localhost:1337/api/v1/en", nil),
//	    dreamdwell.WithIDToken(token),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dd.Close()
//
//	if _, err := dd.Sync(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, p := range dd.Search(filter.Criteria{Rooms: "2"}) {
//	    fmt.Printf("%s - %s\n", p.Name, p.Address)
//	}
package dreamdwell

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/dreamdwell/dreamdwell/pkg/catalog"
	"github.com/dreamdwell/dreamdwell/pkg/draft"
	"github.com/dreamdwell/dreamdwell/pkg/errors"
	"github.com/dreamdwell/dreamdwell/pkg/filter"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
	"github.com/dreamdwell/dreamdwell/pkg/remote"
	"github.com/dreamdwell/dreamdwell/pkg/session"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client is a property catalog session.
type Client interface {

	// Catalog provides copy-on-read access to the catalog and its sync
	Catalog

	// Searcher derives the displayed subset
	Searcher

	// Editor creates, edits and deletes properties
	Editor

	// Hooks provides access to event callback registration
	Hooks

	// Session returns the identity, theme and chrome state
	Session() *session.Session

	// Close detaches the client from its catalog store
	Close()
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options

	store   *catalog.Store
	remote  remote.Client
	editor  *draft.Editor
	session *session.Session
	logger  *zerolog.Logger

	// displayed subset state
	mu               sync.RWMutex
	criteria         filter.Criteria
	displayed        []properties.Property
	displayedVersion uint64
	last             []properties.Property

	*hooks
	unsubscribe func()
}

// New creates a new Client instance with the given options.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	rc := o.remote
	if rc == nil {
		ropts := []remote.Option{
			remote.WithBaseURL(o.baseURL),
			remote.WithTimeout(o.timeout),
			remote.WithLogger(o.logger),
		}
		if o.apiKey != nil && *o.apiKey != "" {
			ropts = append(ropts, remote.WithAPIKey(*o.apiKey))
		}
		rc = remote.NewHTTP(ropts...)
	}

	sess := o.session
	if sess == nil {
		sess = session.New(session.WithLogger(o.logger))
	}
	if o.idToken != "" {
		if _, err := sess.SignIn(o.idToken); err != nil {
			return nil, errors.WrapResource("sign in", "session", "", err)
		}
	}

	store := catalog.New(catalog.WithRecords(o.records), catalog.WithLogger(o.logger))

	c := &client{
		options: o,
		store:   store,
		remote:  rc,
		editor:  draft.NewEditor(store, rc, draft.WithLogger(o.logger)),
		session: sess,
		logger:  o.logger,
		hooks:   newHooks(),
	}

	c.last = store.Snapshot()
	c.displayed = filter.Apply(c.last, c.criteria)
	c.displayedVersion = store.Version()
	c.unsubscribe = store.Subscribe(c.onChange)

	return c, nil
}

// Session implements Client.
func (c *client) Session() *session.Session {
	return c.session
}

// requireSignIn gates create, edit and delete.
func (c *client) requireSignIn() error {
	if c.options.signInRequired && !c.session.SignedIn() {
		return errors.ErrSignInRequired
	}
	return nil
}
