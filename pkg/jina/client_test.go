package jina

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/saas%20companies", r.URL.EscapedPath())
		assert.Equal(t, "5", r.URL.Query().Get("count"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"data":[{"title":"Acme","url":"https://acme.io","content":"SaaS tooling"}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := c.Search(context.Background(), "saas companies", WithCount(5))
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Acme", resp.Data[0].Title)
	assert.Equal(t, "https://acme.io", resp.Data[0].URL)
}

func TestSearch_SiteFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "linkedin.com", r.URL.Query().Get("site"))
		w.Write([]byte(`{"code":200,"data":[]}`))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	_, err := c.Search(context.Background(), "q", WithSiteFilter("linkedin.com"))
	require.NoError(t, err)
}

func TestSearch_NoResultsIs422(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	resp, err := c.Search(context.Background(), "obscure query")
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
}

func TestSearch_ServerErrorIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream broke"))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	_, err := c.Search(context.Background(), "q")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "upstream broke")
}

func TestSearch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient("k", WithBaseURL(srv.URL))
	_, err := c.Search(ctx, "q")
	assert.Error(t, err)
}
