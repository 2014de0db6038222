package pipeline

import (
	"slices"
	"strings"

	"github.com/sells-group/leadscout/internal/model"
)

// Criterion weights. They sum to 100; the score is the sum of the
// weights of the criteria the record matches.
const (
	weightIndustry    = 20
	weightCompanySize = 15
	weightJobTitle    = 25
	weightRegion      = 15
	weightTechStack   = 15
	weightContact     = 10
)

// Matched criteria names as they appear in scoring output.
const (
	criterionIndustry    = "industry"
	criterionCompanySize = "company size"
	criterionJobTitle    = "job title"
	criterionRegion      = "geographic region"
	criterionTechStack   = "technology stack"
	criterionContact     = "contact info"
)

// ScoreLead computes the deterministic confidence assessment for a
// record against a profile. Matching is case-insensitive substring
// matching; ICP fields holding comma-separated lists match if any one
// term matches. Blank ICP fields contribute nothing, so a lead can
// never be penalized on a criterion the profile does not express.
func ScoreLead(rec model.LeadRecord, icp model.ICP) model.Scoring {
	score := 0
	var matched []string

	if termsMatch(icp.Industry, rec.Company.Industry) {
		score += weightIndustry
		matched = append(matched, criterionIndustry)
	}
	if termsMatch(icp.CompanySize, rec.Company.Size) {
		score += weightCompanySize
		matched = append(matched, criterionCompanySize)
	}
	if termsMatch(icp.TargetJobTitles, rec.Lead.Designation) {
		score += weightJobTitle
		matched = append(matched, criterionJobTitle)
	}
	if termsMatch(icp.GeographicRegion, rec.Company.Location) {
		score += weightRegion
		matched = append(matched, criterionRegion)
	}
	if termsMatch(icp.TechnologyUsed, rec.Company.TechStack) {
		score += weightTechStack
		matched = append(matched, criterionTechStack)
	}
	if rec.Lead.ContactDetails.Email != "" || rec.Lead.ContactDetails.Phone != "" {
		score += weightContact
		matched = append(matched, criterionContact)
	}

	return model.Scoring{
		ConfidenceScore:   score,
		Grade:             gradeFor(score),
		MatchedCriteria:   matched,
		Insight:           buildInsight(score, matched, rec),
		RecommendedAction: recommendationFor(score),
	}
}

// termsMatch reports whether any comma-separated term of the ICP field
// appears as a substring of the record field, case-insensitively.
func termsMatch(icpField, recordField string) bool {
	haystack := strings.ToLower(strings.TrimSpace(recordField))
	if haystack == "" {
		return false
	}
	for _, term := range strings.Split(icpField, ",") {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" {
			continue
		}
		if strings.Contains(haystack, t) {
			return true
		}
	}
	return false
}

func gradeFor(score int) string {
	switch {
	case score >= 85:
		return "A"
	case score >= 65:
		return "B"
	case score >= 45:
		return "C"
	default:
		return "D"
	}
}

func buildInsight(score int, matched []string, rec model.LeadRecord) string {
	var parts []string
	switch {
	case score >= 85:
		parts = append(parts, "Excellent match across the target profile.")
	case score >= 65:
		parts = append(parts, "Good match with most key criteria met.")
	case score >= 45:
		parts = append(parts, "Partial match; review before outreach.")
	default:
		parts = append(parts, "Weak match; needs further qualification.")
	}

	if slices.Contains(matched, criterionJobTitle) {
		parts = append(parts, "Decision-maker role identified.")
	}
	if slices.Contains(matched, criterionIndustry) {
		parts = append(parts, "Industry aligns with the target segment.")
	}
	if rec.Lead.ContactDetails.Email != "" && !rec.Metadata.EmailGenerated {
		parts = append(parts, "Direct email available.")
	}
	return strings.Join(parts, " ")
}

func recommendationFor(score int) string {
	switch {
	case score >= 85:
		return "Priority: high-value lead, initiate outreach immediately"
	case score >= 65:
		return "Qualified: strong fit, add to active outreach campaign"
	case score >= 45:
		return "Nurture: potential fit, add to nurture sequence"
	default:
		return "Research: gather more information before engaging"
	}
}
