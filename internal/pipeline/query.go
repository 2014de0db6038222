package pipeline

import (
	"strings"

	"github.com/sells-group/leadscout/internal/model"
)

// icpTerms holds the ICP fields pre-trimmed for query construction.
type icpTerms struct {
	industry string
	title    string
	region   string
	tech     string
	size     string
}

// BuildQueries derives the retrieval query set from a profile. Exactly
// one query is produced per intent, always in the same order, and every
// query falls back to a generic form when its ICP fields are blank, so
// an empty profile still searches.
func BuildQueries(icp model.ICP) []model.SearchQuery {
	t := icpTerms{
		industry: strings.TrimSpace(icp.Industry),
		title:    firstTerm(icp.TargetJobTitles),
		region:   firstTerm(icp.GeographicRegion),
		tech:     strings.TrimSpace(icp.TechnologyUsed),
		size:     strings.TrimSpace(icp.CompanySize),
	}

	return []model.SearchQuery{
		{Intent: model.IntentProfessionalNetwork, Query: t.professionalNetwork()},
		{Intent: model.IntentDirectory, Query: t.directory()},
		{Intent: model.IntentDatabase, Query: t.database()},
		{Intent: model.IntentCompanyPage, Query: t.companyPage()},
		{Intent: model.IntentTechStack, Query: t.techStack()},
		{Intent: model.IntentEmailPattern, Query: t.emailPattern()},
		{Intent: model.IntentHiringNews, Query: t.hiringNews()},
		{Intent: model.IntentSocialProfile, Query: t.socialProfile()},
	}
}

func (t icpTerms) professionalNetwork() string {
	q := joinClauses("site:linkedin.com/in", quote(t.title), t.industry, t.region)
	if t.title == "" && t.industry == "" && t.region == "" {
		q = `site:linkedin.com/in "founder" OR "ceo"`
	}
	return q
}

func (t icpTerms) directory() string {
	return joinClauses(t.industry, "companies directory", t.region, "contact")
}

func (t icpTerms) database() string {
	return joinClauses("site:crunchbase.com OR site:zoominfo.com", t.industry, t.region, "companies")
}

func (t icpTerms) companyPage() string {
	size := ""
	if t.size != "" {
		size = quote(t.size + " employees")
	}
	return joinClauses(t.industry, size, `company "about us" contact`, t.region)
}

func (t icpTerms) techStack() string {
	if t.tech == "" {
		return `companies "built with" technology stack`
	}
	return joinClauses("companies using", t.tech, t.region)
}

func (t icpTerms) emailPattern() string {
	return joinClauses(t.industry, `"email format" OR "email pattern"`, t.region)
}

func (t icpTerms) hiringNews() string {
	return joinClauses(t.industry, "companies hiring", quote(t.title), t.region)
}

func (t icpTerms) socialProfile() string {
	q := joinClauses("site:twitter.com OR site:github.com", quote(t.title), t.industry)
	if t.title == "" && t.industry == "" {
		q = "site:twitter.com OR site:github.com founders"
	}
	return q
}

// firstTerm returns the first non-empty comma-separated term.
func firstTerm(s string) string {
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			return p
		}
	}
	return ""
}

func quote(s string) string {
	if s == "" {
		return ""
	}
	return `"` + s + `"`
}

func joinClauses(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
