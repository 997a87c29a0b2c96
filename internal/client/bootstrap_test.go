package client

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchBootstrap(t *testing.T) {
	script := "function envLoad(){/* widget bootstrap */}"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		fmt.Fprint(w, script)
	}))
	defer srv.Close()

	status, err := New().FetchBootstrap(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status.StatusCode)
	assert.Equal(t, len(script), status.Bytes)
	assert.Equal(t, srv.URL, status.URL)
}

func TestFetchBootstrapErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := New().FetchBootstrap(srv.URL)
	assert.ErrorContains(t, err, "404")

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer empty.Close()

	_, err = New().FetchBootstrap(empty.URL)
	assert.ErrorContains(t, err, "empty body")
}
