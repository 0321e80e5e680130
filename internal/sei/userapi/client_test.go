package userapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtidevpmj/seidev/internal/config"
	"github.com/dtidevpmj/seidev/internal/httpx"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(httpx.FromConfig("userapi", srv.URL, config.OutboundConfig{TimeoutSeconds: 5}, nil))
}

func TestResolveCPF(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/cpf/jdoe", r.URL.Path)
		fmt.Fprint(w, "04870016214\n")
	})

	cpf, err := c.ResolveCPF(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.Equal(t, "04870016214", cpf)
}

func TestResolveCPFEscapesShortName(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		fmt.Fprint(w, "04870016214")
	})

	_, err := c.ResolveCPF(context.Background(), "j doe")
	require.NoError(t, err)
	assert.Equal(t, "/user/cpf/j%20doe", gotPath)
}

func TestResolveCPFEmptyShortName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := c.ResolveCPF(context.Background(), "")
	assert.Error(t, err)
}

func TestResolveCPFEmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "  \n")
	})

	_, err := c.ResolveCPF(context.Background(), "jdoe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestResolveCPFNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.ResolveCPF(context.Background(), "ghost")
	var remote *httpx.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusNotFound, remote.Status)
}
