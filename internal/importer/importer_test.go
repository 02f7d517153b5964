package importer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_OpenGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
<meta property="og:title" content="Льняная рубашка">
<meta property="og:description" content="Свободный крой">
<meta property="og:image" content="/img/shirt.jpg">
</head><body></body></html>`)
	}))
	defer srv.Close()

	p, err := New(srv.Client()).Fetch(context.Background(), srv.URL+"/p/1")
	require.NoError(t, err)
	assert.Equal(t, "Льняная рубашка", p.Name)
	assert.Equal(t, "Свободный крой", p.Description)
	assert.Equal(t, srv.URL+"/img/shirt.jpg", p.ImageURL)
}

func TestFetch_Fallbacks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title> Jeans </title></head><body><img src="https://cdn.example.com/j.png"></body></html>`)
	}))
	defer srv.Close()

	p, err := New(nil).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Jeans", p.Name)
	assert.Equal(t, "https://cdn.example.com/j.png", p.ImageURL)
}

func TestFetch_NoMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>nothing here</body></html>`)
	}))
	defer srv.Close()

	_, err := New(nil).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrNoProductData)
}

func TestFetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := New(nil).Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}
