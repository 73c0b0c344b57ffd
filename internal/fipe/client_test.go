package fipe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleKind(t *testing.T) {
	assert.Equal(t, "carros", VehicleKind("car"))
	assert.Equal(t, "motos", VehicleKind("motorcycle"))
	assert.Equal(t, "caminhoes", VehicleKind("truck"))
	assert.Equal(t, "carros", VehicleKind("anything-else"))
}

func TestBrands(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/carros/marcas", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"codigo":"21","nome":"Fiat"},{"codigo":"25","nome":"Honda"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	brands := c.Brands(context.Background(), "car")

	require.Len(t, brands, 2)
	assert.Equal(t, "21", brands[0].Code)
	assert.Equal(t, "Fiat", brands[0].Name)
}

func TestModelsUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/motos/marcas/77/modelos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"modelos":[{"codigo":5012,"nome":"Fazer 250"}],"anos":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	models := c.Models(context.Background(), "motorcycle", "77")

	require.Len(t, models, 1)
	assert.Equal(t, 5012, models[0].Code)
	assert.Equal(t, "Fazer 250", models[0].Name)
}

func TestYears(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/carros/marcas/21/modelos/4828/anos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"codigo":"2015-1","nome":"2015 Gasolina"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	years := c.Years(context.Background(), "car", "21", 4828)

	require.Len(t, years, 1)
	assert.Equal(t, "2015-1", years[0].Code)
}

func TestDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/carros/marcas/21/modelos/4828/anos/2015-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Valor":"R$ 26.123,00","Marca":"Fiat","Modelo":"Uno","AnoModelo":2015,"Combustivel":"Gasolina","CodigoFipe":"001004-9","MesReferencia":"marco de 2026"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	detail := c.Detail(context.Background(), "car", "21", 4828, "2015-1")

	require.NotNil(t, detail)
	assert.Equal(t, "R$ 26.123,00", detail.Price)
	assert.Equal(t, 2015, detail.ModelYear)
	assert.Equal(t, "001004-9", detail.FipeCode)
}

func TestLookupsDegradeToEmptyOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	assert.Empty(t, c.Brands(ctx, "car"))
	assert.Empty(t, c.Models(ctx, "car", "21"))
	assert.Empty(t, c.Years(ctx, "car", "21", 4828))
	assert.Nil(t, c.Detail(ctx, "car", "21", 4828, "2015-1"))
}

func TestLookupsDegradeToEmptyOnUnreachableHost(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, time.Second)
	assert.Empty(t, c.Brands(context.Background(), "car"))
}
