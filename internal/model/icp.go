package model

import "github.com/rotisserie/eris"

// ICP is an Ideal Customer Profile: the targeting criteria for one lead
// search. All fields except Name are optional free text; comma-separated
// fields carry multiple terms. An ICP is immutable for the duration of a
// search request.
type ICP struct {
	Name             string  `json:"icp_name" yaml:"icp_name"`
	CompanySize      string  `json:"company_size,omitempty" yaml:"company_size"`
	Industry         string  `json:"industry,omitempty" yaml:"industry"`
	TargetJobTitles  string  `json:"target_job_title,omitempty" yaml:"target_job_title"`
	GeographicRegion string  `json:"geographic_region,omitempty" yaml:"geographic_region"`
	TechnologyUsed   string  `json:"technology_used,omitempty" yaml:"technology_used"`
	PainPoints       string  `json:"pain_points,omitempty" yaml:"pain_points"`
	MinBudget        float64 `json:"min_budget,omitempty" yaml:"min_budget"`
	MaxBudget        float64 `json:"max_budget,omitempty" yaml:"max_budget"`
}

// Validate checks the ICP's internal consistency. A zero budget bound is
// treated as unset.
func (p ICP) Validate() error {
	if p.MinBudget < 0 || p.MaxBudget < 0 {
		return eris.New("icp: budget bounds must be non-negative")
	}
	if p.MinBudget > 0 && p.MaxBudget > 0 && p.MinBudget > p.MaxBudget {
		return eris.Errorf("icp: min_budget %.0f exceeds max_budget %.0f", p.MinBudget, p.MaxBudget)
	}
	return nil
}

// IsEmpty reports whether no targeting criteria were supplied at all.
func (p ICP) IsEmpty() bool {
	return p.CompanySize == "" &&
		p.Industry == "" &&
		p.TargetJobTitles == "" &&
		p.GeographicRegion == "" &&
		p.TechnologyUsed == ""
}
