// Package pipeline implements the lead extraction flow: an ideal
// customer profile goes in, a scored and deduplicated lead envelope
// comes out. The stages run in a fixed order — query building,
// retrieval fan-out, structured extraction, contact enrichment,
// confidence scoring, aggregation.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/pkg/anthropic"
	"github.com/sells-group/leadscout/pkg/jina"
)

// Pipeline wires the search and model backends to the extraction flow.
type Pipeline struct {
	cfg    *config.Config
	search jina.Client
	ai     anthropic.Client
}

// New builds a Pipeline from config and backend clients.
func New(cfg *config.Config, search jina.Client, ai anthropic.Client) *Pipeline {
	return &Pipeline{cfg: cfg, search: search, ai: ai}
}

// Health reports whether the pipeline's backends are configured.
func (p *Pipeline) Health() model.HealthStatus {
	retrieval := p.search != nil
	llm := p.ai != nil
	status := "healthy"
	if !retrieval || !llm {
		status = "degraded"
	}
	return model.HealthStatus{
		Status:              status,
		RetrievalConfigured: retrieval,
		LLMConfigured:       llm,
		PipelineReady:       retrieval && llm,
	}
}

// Run executes the full pipeline for one profile. The returned envelope
// is always a success envelope; failures come back as errors for the
// caller to classify and wrap.
func (p *Pipeline) Run(ctx context.Context, icp model.ICP) (*model.Envelope, error) {
	if p.search == nil || p.ai == nil {
		return nil, ErrNotConfigured
	}
	if err := icp.Validate(); err != nil {
		return nil, eris.Wrap(ErrInvalidICP, err.Error())
	}

	start := time.Now()
	log := zap.L().With(zap.String("icp_name", icp.Name))

	queries := BuildQueries(icp)
	log.Info("starting lead search", zap.Int("queries", len(queries)))

	results, err := Retrieve(ctx, queries, p.search, p.cfg.Retrieval)
	if err != nil {
		return nil, err
	}

	extractCtx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.Extraction.TimeoutSecs)*time.Second)
	defer cancel()
	records, err := Extract(extractCtx, results, icp, p.ai, p.cfg.Anthropic, p.cfg.Extraction)
	if err != nil {
		return nil, err
	}

	for i := range records {
		EnrichContact(&records[i], p.cfg.Pipeline.CompletenessThreshold)
		scoring := ScoreLead(records[i], icp)
		records[i].Scoring = &scoring
	}

	env := Aggregate(icp.Name, records)
	log.Info("lead search complete",
		zap.Int("total_leads", env.TotalLeads),
		zap.Duration("elapsed", time.Since(start)))
	return env, nil
}
