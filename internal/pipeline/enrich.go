package pipeline

import (
	"fmt"
	"math"
	"strings"

	"github.com/sells-group/leadscout/internal/model"
)

// EnrichContact fills contact gaps and computes the record's quality
// metadata in place. When the lead has no email but the company website
// yields a usable domain and the lead name splits into first/last,
// candidate addresses are synthesized from common corporate patterns.
// Synthesized addresses are always flagged so downstream consumers can
// tell guesses from evidence.
func EnrichContact(rec *model.LeadRecord, completenessThreshold int) {
	if rec.Lead.ContactDetails.Email == "" {
		primary, alts := synthesizeEmails(rec.Lead.Name, rec.Company.Website)
		if primary != "" {
			rec.Lead.ContactDetails.Email = primary
			rec.Lead.ContactDetails.EmailAlts = alts
			rec.Lead.ContactDetails.EmailSource = model.EmailSourcePattern
			rec.Metadata.EmailGenerated = true
		}
	}

	rec.Metadata.DataCompleteness = computeCompleteness(rec, completenessThreshold)
	rec.Metadata.ContactQuality = contactQuality(rec)
}

// synthesizeEmails builds candidate addresses from the lead's name and
// the company domain. The first pattern, first.last, is the primary
// candidate; the rest are alternates. Returns empty when the name or
// domain cannot support synthesis.
func synthesizeEmails(name, website string) (string, []string) {
	first, last, ok := splitName(name)
	if !ok {
		return "", nil
	}
	domain := domainFromWebsite(website)
	if domain == "" {
		return "", nil
	}

	locals := []string{
		first + "." + last,
		first + last,
		first,
		first[:1] + last,
		first + "_" + last,
		last + "." + first,
		first[:1] + "." + last,
	}

	seen := make(map[string]bool, len(locals))
	candidates := make([]string, 0, len(locals))
	for _, local := range locals {
		addr := fmt.Sprintf("%s@%s", local, domain)
		if seen[addr] {
			continue
		}
		seen[addr] = true
		candidates = append(candidates, addr)
	}
	return candidates[0], candidates[1:]
}

// splitName extracts lowercase first and last name tokens. Middle names
// are discarded. Single-token and empty names are not usable.
func splitName(name string) (string, string, bool) {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return "", "", false
	}
	first := sanitizeToken(fields[0])
	last := sanitizeToken(fields[len(fields)-1])
	if first == "" || last == "" {
		return "", "", false
	}
	return first, last, true
}

func sanitizeToken(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// domainFromWebsite reduces a website value to a bare domain suitable
// for the local@domain form.
func domainFromWebsite(website string) string {
	s := strings.TrimSpace(strings.ToLower(website))
	if s == "" {
		return ""
	}
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	if i := strings.IndexAny(s, "/?#"); i != -1 {
		s = s[:i]
	}
	if i := strings.Index(s, ":"); i != -1 {
		s = s[:i]
	}
	if !strings.Contains(s, ".") {
		return ""
	}
	return s
}

// computeCompleteness counts populated fields across the fixed lead and
// company schema. "Complete" additionally requires a direct contact
// channel on the lead and a company identity (name and website); a high
// percentage alone does not qualify.
func computeCompleteness(rec *model.LeadRecord, threshold int) model.Completeness {
	fields := []string{
		rec.Lead.Name,
		rec.Lead.Designation,
		rec.Lead.CompanyName,
		rec.Lead.SourceURL,
		rec.Lead.ContactDetails.Email,
		rec.Lead.ContactDetails.Phone,
		rec.Lead.ContactDetails.LinkedIn,
		rec.Lead.SocialProfiles.Twitter,
		rec.Lead.SocialProfiles.Facebook,
		rec.Lead.SocialProfiles.GitHub,
		rec.Company.Name,
		rec.Company.About,
		rec.Company.Industry,
		rec.Company.Size,
		rec.Company.Location,
		rec.Company.Address,
		rec.Company.Website,
		rec.Company.ContactEmail,
		rec.Company.ContactPhone,
		rec.Company.TechStack,
		rec.Company.Revenue,
		rec.Company.FoundedYear,
		rec.Company.Funding,
		rec.Company.RecentNews,
	}

	filled := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			filled++
		}
	}
	total := len(fields)
	pct := int(math.Round(float64(filled) / float64(total) * 100))

	status := model.CompletenessPartial
	if pct >= threshold && hasLeadContact(rec) && hasCompanyIdentity(rec) {
		status = model.CompletenessComplete
	}

	return model.Completeness{
		Percentage:   pct,
		FilledFields: filled,
		TotalFields:  total,
		Status:       status,
	}
}

func hasLeadContact(rec *model.LeadRecord) bool {
	c := rec.Lead.ContactDetails
	return c.Email != "" || c.Phone != "" || c.LinkedIn != ""
}

func hasCompanyIdentity(rec *model.LeadRecord) bool {
	return rec.Company.Name != "" && rec.Company.Website != ""
}

// contactQuality is High only when a directly actionable channel exists:
// an evidence-backed email, a phone number, or a LinkedIn profile.
// Synthesized emails alone do not qualify.
func contactQuality(rec *model.LeadRecord) string {
	c := rec.Lead.ContactDetails
	if (c.Email != "" && !rec.Metadata.EmailGenerated) || c.Phone != "" || c.LinkedIn != "" {
		return model.ContactQualityHigh
	}
	return model.ContactQualityLow
}
