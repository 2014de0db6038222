package model

import "time"

// Contact quality classifications.
const (
	ContactQualityHigh = "High"
	ContactQualityLow  = "Low"
)

// Data completeness statuses.
const (
	CompletenessComplete = "Complete"
	CompletenessPartial  = "Partial"
)

// Email provenance values for ContactDetails.EmailSource.
const (
	EmailSourceExtracted = "extracted"
	EmailSourcePattern   = "pattern"
)

// LeadRecord is the canonical extracted entity: a person, their company,
// and the metadata/scoring the pipeline attaches. Records are created once
// per request by the extraction engine, mutated in place by the enricher
// and scorer, and discarded at response time.
type LeadRecord struct {
	Lead     Lead     `json:"lead"`
	Company  Company  `json:"company"`
	Metadata Metadata `json:"metadata"`
	Scoring  *Scoring `json:"scoring,omitempty"`
}

// Lead holds the person-level fields.
type Lead struct {
	Name           string         `json:"name"`
	Designation    string         `json:"designation"`
	CompanyName    string         `json:"company_name"`
	SourceURL      string         `json:"source_url"`
	ContactDetails ContactDetails `json:"contact_details"`
	SocialProfiles SocialProfiles `json:"social_profiles"`
}

// ContactDetails holds direct contact data for a lead. EmailSource is
// "extracted" for evidence-backed addresses and "pattern" for synthesized
// candidates.
type ContactDetails struct {
	Email       string   `json:"email"`
	EmailSource string   `json:"email_source,omitempty"`
	EmailAlts   []string `json:"email_alternates,omitempty"`
	Phone       string   `json:"phone"`
	LinkedIn    string   `json:"linkedin"`
}

// SocialProfiles holds non-LinkedIn social handles.
type SocialProfiles struct {
	Twitter  string `json:"twitter"`
	Facebook string `json:"facebook"`
	GitHub   string `json:"github"`
}

// Company holds the company-level fields.
type Company struct {
	Name         string `json:"name"`
	About        string `json:"about"`
	Industry     string `json:"industry"`
	Size         string `json:"size"`
	Location     string `json:"location"`
	Address      string `json:"address"`
	Website      string `json:"website"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	TechStack    string `json:"tech_stack"`
	Revenue      string `json:"revenue"`
	FoundedYear  string `json:"founded_year"`
	Funding      string `json:"funding"`
	RecentNews   string `json:"recent_news"`
}

// Metadata carries per-record provenance and quality tags.
type Metadata struct {
	ExtractionTimestamp time.Time    `json:"extraction_timestamp"`
	SourceURL           string       `json:"source_url"`
	DataCompleteness    Completeness `json:"data_completeness"`
	ContactQuality      string       `json:"contact_quality"`
	EmailGenerated      bool         `json:"email_generated"`
}

// Completeness summarizes how many schema fields are populated.
// Percentage is always filled/total*100, rounded.
type Completeness struct {
	Percentage   int    `json:"percentage"`
	FilledFields int    `json:"filled_fields"`
	TotalFields  int    `json:"total_fields"`
	Status       string `json:"status"`
}

// Scoring is the deterministic ICP-match assessment attached by the
// confidence scorer. ConfidenceScore is always recomputed from the record's
// current field values, never hand-set.
type Scoring struct {
	ConfidenceScore   int      `json:"confidence_score"`
	Grade             string   `json:"grade"`
	MatchedCriteria   []string `json:"matched_criteria"`
	Insight           string   `json:"insight"`
	RecommendedAction string   `json:"recommended_action"`
}
