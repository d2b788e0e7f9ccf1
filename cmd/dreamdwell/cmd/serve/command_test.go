package serve

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamdwell/dreamdwell/internal/appcontext"
	"github.com/dreamdwell/dreamdwell/internal/cmd/cmdtest"
	"github.com/dreamdwell/dreamdwell/internal/server"
	"github.com/dreamdwell/dreamdwell/pkg/errors"
)

func TestConfigFromFlags(t *testing.T) {
	cmd := NewCommand(&appcontext.Mock{})
	require.NoError(t, cmd.Flags().Parse([]string{
		"--port", "9000",
		"--cors-origins", "https://a.example,https://b.example",
		"--api-key", "k",
		"--sync-interval", "1m",
	}))

	cfg, err := configFromFlags(cmd)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.CORSEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, time.Minute, cfg.SyncInterval)
	assert.Equal(t, "/api/v1", cfg.PathPrefix)
}

func TestConfigFromFlagsRejectsBadValues(t *testing.T) {
	for _, args := range [][]string{
		{"--port", "70000"},
		{"--rate-limit", "-1"},
		{"--sync-interval", "-1s"},
	} {
		cmd := NewCommand(&appcontext.Mock{})
		require.NoError(t, cmd.Flags().Parse(args))
		_, err := configFromFlags(cmd)
		assert.True(t, errors.IsValidationError(err), args)
	}
}

func TestServe(t *testing.T) {
	env := cmdtest.NewEnv(t, "", cmdtest.Records()...)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, &out, env.App, server.DefaultConfig(), ln)
	}()

	base := "http://" + ln.Addr().String()
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/api/v1/ready")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Get(base + "/api/v1/properties?rooms=2")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), `"total":2`)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	assert.Contains(t, out.String(), "Serving catalog on http://"+ln.Addr().String()+"/api/v1")
	assert.Contains(t, out.String(), "Server stopped")
}
