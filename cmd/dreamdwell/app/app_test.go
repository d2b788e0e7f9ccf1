package app

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamdwell/dreamdwell"
	"github.com/dreamdwell/dreamdwell/internal/appcontext"
	"github.com/dreamdwell/dreamdwell/pkg/errors"
	"github.com/dreamdwell/dreamdwell/pkg/logging"
	"github.com/dreamdwell/dreamdwell/pkg/remote"
)

func offlineApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	clearEnv(t)
	t.Setenv("DREAMDWELL_OFFLINE", "true")
	opts = append([]Option{WithLogger(logging.NewNopLogger())}, opts...)
	a, err := New(appcontext.BuildInfo{Version: "1.0.0", Commit: "abc123", Date: "2024-01-01", BuiltBy: "test"}, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })
	return a
}

func token(t *testing.T) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "7", "name": "Tess"}).
		SignedString([]byte("app-test"))
	require.NoError(t, err)
	return s
}

func execute(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := a.createRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestApp_New(t *testing.T) {
	a := offlineApp(t)

	assert.Equal(t, appcontext.BuildInfo{Version: "1.0.0", Commit: "abc123", Date: "2024-01-01", BuiltBy: "test"}, a.Build())
	assert.NotNil(t, a.Logger())
	assert.NotNil(t, a.Config())
	assert.True(t, a.Config().Offline)
}

func TestApp_Client_Singleton(t *testing.T) {
	a := offlineApp(t)

	const goroutines = 50
	var wg sync.WaitGroup
	clients := make([]dreamdwell.Client, goroutines)
	for i := range goroutines {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			c, err := a.Client()
			assert.NoError(t, err)
			clients[idx] = c
		}(i)
	}
	wg.Wait()

	for _, c := range clients {
		assert.Same(t, clients[0], c)
	}
}

func TestApp_WithClient(t *testing.T) {
	c, err := dreamdwell.New(dreamdwell.WithRemote(remote.NewMemory()))
	require.NoError(t, err)

	a := offlineApp(t, WithClient(c))
	got, err := a.Client()
	require.NoError(t, err)
	assert.Same(t, c, got)
}

func TestApp_BadTheme(t *testing.T) {
	a := offlineApp(t)
	a.config.Theme = "sepia"

	_, err := a.Client()
	require.Error(t, err)
}

func TestApp_WithFsNil(t *testing.T) {
	clearEnv(t)
	_, err := New(appcontext.BuildInfo{Version: "dev"}, WithFs(nil))
	require.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestExecute_Version(t *testing.T) {
	a := offlineApp(t)

	out, err := execute(t, a, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dreamdwell version 1.0.0")
}

func TestRootCommandGroups(t *testing.T) {
	a := offlineApp(t)
	root := a.createRootCommand()

	groups := map[string]string{}
	for _, c := range root.Commands() {
		groups[c.Name()] = c.GroupID
	}
	for _, name := range []string{"list", "add", "edit", "delete", "serve"} {
		assert.Equal(t, "core", groups[name], name)
	}
	for _, name := range []string{"whoami", "completion"} {
		assert.Equal(t, "management", groups[name], name)
	}
}

func TestExecute_Completion(t *testing.T) {
	a := offlineApp(t)

	out, err := execute(t, a, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef dreamdwell")
}

func TestExecute_OfflineList(t *testing.T) {
	a := offlineApp(t)

	out, err := execute(t, a, "list", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
	assert.Equal(t, "json", a.Config().Format)
}

func TestExecute_AddRequiresSignIn(t *testing.T) {
	a := offlineApp(t)

	_, err := execute(t, a, "add", "--name", "Loft")
	require.ErrorIs(t, err, errors.ErrSignInRequired)
}

func TestExecute_AddThenList(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "pic.gif", []byte("GIF89a\x01\x00\x01\x00"), 0o644))
	a := offlineApp(t, WithFs(fs))
	a.config.IDToken = token(t)

	_, err := execute(t, a, "add", "-o", "json",
		"--name", "Loft", "--price", "1200", "--address", "12 Oak St",
		"--baths", "1", "--beds", "2", "--area", "5", "--owner", "Ana",
		"--image", "pic.gif")
	require.NoError(t, err)

	out, err := execute(t, a, "list", "-o", "json", "--rooms", "2")
	require.NoError(t, err)

	var rows []struct {
		Index    int `json:"index"`
		Property struct {
			Name   string   `json:"name"`
			Images []string `json:"images"`
		} `json:"property"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Loft", rows[0].Property.Name)
	require.Len(t, rows[0].Property.Images, 1)
	assert.Contains(t, rows[0].Property.Images[0], "data:image/gif;base64,")
}

func TestExecute_Whoami(t *testing.T) {
	a := offlineApp(t)
	a.config.IDToken = token(t)

	out, err := execute(t, a, "whoami", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "signed_in: true")
	assert.Contains(t, out, "name: Tess")
}
