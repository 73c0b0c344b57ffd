package cep

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/80010000/json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cep":"80010-000","logradouro":"Rua XV de Novembro","bairro":"Centro","localidade":"Curitiba","uf":"PR"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	addr, err := c.Lookup(context.Background(), "80010000")
	require.NoError(t, err)

	assert.Equal(t, "80010-000", addr.Code)
	assert.Equal(t, "Rua XV de Novembro", addr.Street)
	assert.Equal(t, "Curitiba", addr.City)
	assert.Equal(t, "PR", addr.State)
}

func TestLookupUnknownCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The postal service answers 200 with an error marker.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"erro": true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Lookup(context.Background(), "99999999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Lookup(context.Background(), "80010000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupInvalidCodeNeverHitsTheNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	for _, code := range []string{"1234", "123456789", "8001000a", "80010-00", ""} {
		_, err := c.Lookup(context.Background(), code)
		assert.ErrorIs(t, err, ErrInvalidCode, code)
	}
	assert.False(t, called)
}
