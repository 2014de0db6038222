package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/pipeline"
	"github.com/sells-group/leadscout/pkg/anthropic"
	"github.com/sells-group/leadscout/pkg/jina"
)

type stubSearch struct {
	resp *jina.SearchResponse
	err  error
}

func (s stubSearch) Search(ctx context.Context, query string, opts ...jina.SearchOption) (*jina.SearchResponse, error) {
	return s.resp, s.err
}

type stubAI struct {
	text string
	err  error
}

func (s stubAI) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: s.text}},
	}, nil
}

func serverConfig() *config.Config {
	return &config.Config{
		Retrieval:  config.RetrievalConfig{ResultsPerQuery: 5, QueryTimeoutSecs: 5, QueriesPerSec: 1000, Retries: 0},
		Extraction: config.ExtractionConfig{TimeoutSecs: 30, MaxOutputTokens: 1024, Temperature: 0.1},
		Pipeline:   config.PipelineConfig{RequestTimeoutSecs: 30, CompletenessThreshold: 50},
		Server:     config.ServerConfig{Port: 0, AllowAllCORS: true},
	}
}

func newTestServer(search jina.Client, ai anthropic.Client) *Server {
	cfg := serverConfig()
	return New(cfg, pipeline.New(cfg, search, ai))
}

func postSearch(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/search-leads", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) model.Envelope {
	t.Helper()
	var env model.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHealth(t *testing.T) {
	srv := newTestServer(stubSearch{}, stubAI{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var h model.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Equal(t, "healthy", h.Status)
	assert.True(t, h.PipelineReady)
}

func TestSearchLeads_InvalidBody(t *testing.T) {
	srv := newTestServer(stubSearch{}, stubAI{})

	rec := postSearch(t, srv, "{not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, pipeline.CodeInvalidRequest, env.ErrorCode)
	assert.NotEmpty(t, env.RequestID)
}

func TestSearchLeads_RetrievalExhausted(t *testing.T) {
	srv := newTestServer(stubSearch{err: assert.AnError}, stubAI{})

	rec := postSearch(t, srv, `{"icp_name":"test","industry":"SaaS"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, pipeline.CodeRetrievalExhausted, env.ErrorCode)
	assert.Equal(t, "test", env.ICPName)
}

func TestSearchLeads_Success(t *testing.T) {
	search := stubSearch{resp: &jina.SearchResponse{Data: []jina.SearchResult{
		{Title: "Jane Doe - CTO", URL: "https://linkedin.example/janedoe", Content: "Jane Doe, CTO at Acme"},
	}}}
	ai := stubAI{text: `[{"lead_name":"Jane Doe","designation":"CTO","company_name":"Acme","source_url":"https://linkedin.example/janedoe","company_industry":"SaaS","company_website":"https://acme.io"}]`}

	srv := newTestServer(search, ai)
	rec := postSearch(t, srv, `{"icp_name":"test","industry":"SaaS"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, 1, env.TotalLeads)
	assert.NotEmpty(t, env.RequestID)
	require.Len(t, env.Leads, 1)
	assert.Equal(t, "Jane Doe", env.Leads[0].Lead.Name)
}
