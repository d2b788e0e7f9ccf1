// Package cmdtest holds helpers shared by the command tests.
package cmdtest

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/dreamdwell/dreamdwell"
	"github.com/dreamdwell/dreamdwell/internal/appcontext"
	"github.com/dreamdwell/dreamdwell/internal/images"
	"github.com/dreamdwell/dreamdwell/pkg/logging"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
	"github.com/dreamdwell/dreamdwell/pkg/remote"
)

// Records returns a small catalog used across command tests.
func Records() []properties.Property {
	return []properties.Property{
		{ID: "1", Name: "Cabin", Price: 1200, Address: "12 Oak St", BathCount: 1, BedCount: 2, Area: "5", Owner: "Ana"},
		{ID: "2", Name: "Villa", Price: 950000.5, Address: "4 Main Rd", BathCount: 3, BedCount: 4, Area: "7", Owner: "Bo"},
		{ID: "3", Name: "Loft", Price: 800, Address: "9 Oak Ave", BathCount: 1, BedCount: 2, Area: "5", Owner: "Cy"},
	}
}

// IDToken signs an id token for subject.
func IDToken(t testing.TB, subject string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   subject,
		"name":  "Ana Lima",
		"email": "ana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("cmdtest"))
	require.NoError(t, err)
	return token
}

// Env is a mock application backed by an in-memory store and filesystem.
type Env struct {
	App    *appcontext.Mock
	Remote *remote.Memory
	Fs     afero.Fs
	Client dreamdwell.Client
}

// NewEnv creates an Env whose client is signed in unless token is empty.
func NewEnv(t testing.TB, token string, records ...properties.Property) *Env {
	t.Helper()
	env := &Env{
		Remote: remote.NewMemory(records...),
		Fs:     afero.NewMemMapFs(),
	}
	opts := []dreamdwell.Option{
		dreamdwell.WithRemote(env.Remote),
		dreamdwell.WithLogger(logging.NewNopLogger()),
	}
	if token != "" {
		opts = append(opts, dreamdwell.WithIDToken(token))
	}
	client, err := dreamdwell.New(opts...)
	require.NoError(t, err)
	t.Cleanup(client.Close)
	env.Client = client

	loader := images.NewLoader(images.WithFs(env.Fs), images.WithLogger(logging.NewNopLogger()))
	env.App = &appcontext.Mock{Catalog: client, Loader: loader}
	return env
}

// WithFormat sets the output format the mock reports.
func (e *Env) WithFormat(format string) *Env {
	e.App.Format = format
	return e
}

// Run executes cmd with args and returns what it wrote to stdout.
func Run(t testing.TB, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}
