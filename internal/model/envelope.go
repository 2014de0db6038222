package model

import "time"

// Envelope is the pipeline's single response shape. Success envelopes carry
// the scored lead list; failure envelopes carry Error and ErrorCode only.
// The boundary layer must always emit a well-formed envelope, never a raw
// fault.
type Envelope struct {
	Success    bool         `json:"success"`
	ICPName    string       `json:"icp_name,omitempty"`
	Timestamp  string       `json:"timestamp,omitempty"`
	TotalLeads int          `json:"total_leads"`
	Leads      []LeadRecord `json:"leads,omitempty"`
	Error      string       `json:"error,omitempty"`
	ErrorCode  string       `json:"error_code,omitempty"`
	RequestID  string       `json:"request_id,omitempty"`
}

// NewFailureEnvelope builds a failed envelope with a stable error code.
func NewFailureEnvelope(code, msg string) *Envelope {
	return &Envelope{
		Success:   false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Error:     msg,
		ErrorCode: code,
	}
}

// HealthStatus reports backend readiness to the request-handling layer.
type HealthStatus struct {
	Status              string `json:"status"`
	RetrievalConfigured bool   `json:"retrieval_configured"`
	LLMConfigured       bool   `json:"llm_configured"`
	PipelineReady       bool   `json:"pipeline_ready"`
}
