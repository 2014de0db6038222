package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/pkg/jina"
)

func testConfig() *config.Config {
	return &config.Config{
		Anthropic:  testAnthropicConfig(),
		Retrieval:  testRetrievalConfig(),
		Extraction: testExtractionConfig(),
		Pipeline:   config.PipelineConfig{RequestTimeoutSecs: 60, CompletenessThreshold: 50},
	}
}

func TestPipeline_Health(t *testing.T) {
	p := New(testConfig(), new(mockJinaClient), new(mockAnthropicClient))
	h := p.Health()
	assert.Equal(t, "healthy", h.Status)
	assert.True(t, h.PipelineReady)

	degraded := New(testConfig(), nil, new(mockAnthropicClient)).Health()
	assert.Equal(t, "degraded", degraded.Status)
	assert.False(t, degraded.RetrievalConfigured)
	assert.False(t, degraded.PipelineReady)
}

func TestPipeline_RunUnconfigured(t *testing.T) {
	p := New(testConfig(), nil, nil)
	_, err := p.Run(context.Background(), fullICP())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPipeline_RunInvalidICP(t *testing.T) {
	p := New(testConfig(), new(mockJinaClient), new(mockAnthropicClient))
	icp := fullICP()
	icp.MinBudget = 100
	icp.MaxBudget = 10

	_, err := p.Run(context.Background(), icp)
	assert.ErrorIs(t, err, ErrInvalidICP)
}

func TestPipeline_RunRetrievalExhausted(t *testing.T) {
	search := new(mockJinaClient)
	search.On("Search", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	p := New(testConfig(), search, new(mockAnthropicClient))
	_, err := p.Run(context.Background(), fullICP())
	assert.ErrorIs(t, err, ErrRetrievalExhausted)
}

func TestPipeline_RunEndToEnd(t *testing.T) {
	search := new(mockJinaClient)
	search.On("Search", mock.Anything, mock.Anything).Return(&jina.SearchResponse{
		Data: []jina.SearchResult{
			{Title: "Jane Doe - CTO at Acme", URL: "https://linkedin.example/janedoe", Content: "Jane Doe is CTO at Acme, a SaaS company in California using Kubernetes."},
		},
	}, nil)

	ai := new(mockAnthropicClient)
	ai.On("CreateMessage", mock.Anything, mock.Anything).Return(textResponse(`[
		{"lead_name":"Jane Doe","designation":"CTO","company_name":"Acme","source_url":"https://linkedin.example/janedoe","email":"","phone":"","linkedin":"https://linkedin.example/janedoe","twitter":"","facebook":"","github":"","company_about":"SaaS tooling","company_industry":"SaaS","company_size":"51-200","company_location":"California","company_address":"","company_website":"https://acme.io","company_email":"","company_phone":"","company_tech":"Kubernetes","company_revenue":"","company_founded":"","company_funding":"","company_news":""},
		{"lead_name":"jane doe","designation":"CTO","company_name":"acme","source_url":"https://linkedin.example/janedoe","email":"","phone":"","linkedin":"","twitter":"","facebook":"","github":"","company_about":"","company_industry":"","company_size":"","company_location":"","company_address":"","company_website":"","company_email":"","company_phone":"","company_tech":"","company_revenue":"","company_founded":"","company_funding":"","company_news":""}
	]`), nil).Once()

	p := New(testConfig(), search, ai)
	env, err := p.Run(context.Background(), fullICP())
	require.NoError(t, err)

	assert.True(t, env.Success)
	assert.Equal(t, "saas-founders", env.ICPName)
	// The duplicate collapses to the more complete record.
	require.Equal(t, 1, env.TotalLeads)

	lead := env.Leads[0]
	assert.Equal(t, "Jane Doe", lead.Lead.Name)
	// Email synthesized from the company domain, flagged as a guess.
	assert.Equal(t, "jane.doe@acme.io", lead.Lead.ContactDetails.Email)
	assert.True(t, lead.Metadata.EmailGenerated)
	// LinkedIn present, so quality is still High.
	assert.Equal(t, model.ContactQualityHigh, lead.Metadata.ContactQuality)

	require.NotNil(t, lead.Scoring)
	// industry + size + title + region + tech + contact = 100.
	assert.Equal(t, 100, lead.Scoring.ConfidenceScore)
	assert.Equal(t, "A", lead.Scoring.Grade)
}
