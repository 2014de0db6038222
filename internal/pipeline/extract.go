package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/pkg/anthropic"
)

const extractionSystemPrompt = `You are a B2B lead extraction specialist. You read raw web search evidence and extract structured lead records for sales prospecting.

Rules:
- Extract only people and companies that actually appear in the evidence. Never invent names, companies, contact details, or any other fact.
- Every field you cannot support with evidence must be an empty string "".
- source_url must be the exact URL of the evidence item the lead was found in. Never fabricate or alter URLs.
- A record must have at least a lead_name or a company_name.
- Respond with a JSON array only. No prose, no markdown fences, no commentary.

Each element of the array is an object with exactly these string fields:
lead_name, designation, company_name, source_url, email, phone, linkedin, twitter, facebook, github, company_about, company_industry, company_size, company_location, company_address, company_website, company_email, company_phone, company_tech, company_revenue, company_founded, company_funding, company_news`

// extractedLead is the flat wire schema the model responds with.
type extractedLead struct {
	LeadName        string `json:"lead_name"`
	Designation     string `json:"designation"`
	CompanyName     string `json:"company_name"`
	SourceURL       string `json:"source_url"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	LinkedIn        string `json:"linkedin"`
	Twitter         string `json:"twitter"`
	Facebook        string `json:"facebook"`
	GitHub          string `json:"github"`
	CompanyAbout    string `json:"company_about"`
	CompanyIndustry string `json:"company_industry"`
	CompanySize     string `json:"company_size"`
	CompanyLocation string `json:"company_location"`
	CompanyAddress  string `json:"company_address"`
	CompanyWebsite  string `json:"company_website"`
	CompanyEmail    string `json:"company_email"`
	CompanyPhone    string `json:"company_phone"`
	CompanyTech     string `json:"company_tech"`
	CompanyRevenue  string `json:"company_revenue"`
	CompanyFounded  string `json:"company_founded"`
	CompanyFunding  string `json:"company_funding"`
	CompanyNews     string `json:"company_news"`
}

// Extract sends the evidence pool to the model and parses the structured
// lead records it returns. Transport and timeout errors surface to the
// caller; a response that cannot be parsed as the expected schema is
// retried once with a corrective prompt and then fails closed, yielding
// zero leads rather than malformed ones.
func Extract(ctx context.Context, results []model.RetrievalResult, icp model.ICP, ai anthropic.Client, aiCfg config.AnthropicConfig, cfg config.ExtractionConfig) ([]model.LeadRecord, error) {
	pool, urls := buildEvidencePool(results, cfg.MaxContextChars)
	if pool == "" {
		return nil, nil
	}

	temp := cfg.Temperature
	req := anthropic.MessageRequest{
		Model:       aiCfg.Model,
		MaxTokens:   cfg.MaxOutputTokens,
		System:      anthropic.BuildCachedSystemBlocks(extractionSystemPrompt),
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildExtractionPrompt(icp, pool)},
		},
	}

	resp, err := ai.CreateMessage(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "extraction request failed")
	}
	resp.Usage.LogCost(aiCfg.Model, "extract")

	raw := resp.Text()
	leads, parseErr := parseExtraction(raw)
	if parseErr != nil {
		zap.L().Warn("extraction response failed to parse, retrying with correction", zap.Error(parseErr))
		leads, err = retryExtraction(ctx, ai, aiCfg, req, raw, parseErr)
		if err != nil {
			// Fail closed: no leads beats malformed leads.
			zap.L().Warn("extraction failed after corrective retry, returning no leads", zap.Error(err))
			return nil, nil
		}
	}

	records := toLeadRecords(leads, urls)
	zap.L().Info("extraction complete",
		zap.Int("raw_leads", len(leads)),
		zap.Int("accepted", len(records)))
	return records, nil
}

// retryExtraction replays the conversation with the malformed response
// and a corrective instruction appended.
func retryExtraction(ctx context.Context, ai anthropic.Client, aiCfg config.AnthropicConfig, req anthropic.MessageRequest, badResponse string, parseErr error) ([]extractedLead, error) {
	req.Messages = append(req.Messages,
		anthropic.Message{Role: "assistant", Content: badResponse},
		anthropic.Message{Role: "user", Content: fmt.Sprintf(
			"Your previous response could not be parsed: %v. Respond again with ONLY the JSON array, no markdown fences and no other text.", parseErr)},
	)

	resp, err := ai.CreateMessage(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "corrective extraction request failed")
	}
	resp.Usage.LogCost(aiCfg.Model, "extract_retry")
	return parseExtraction(resp.Text())
}

func buildExtractionPrompt(icp model.ICP, pool string) string {
	var b strings.Builder
	b.WriteString("Target customer profile:\n")
	writeProfileLine(&b, "Industry", icp.Industry)
	writeProfileLine(&b, "Company size", icp.CompanySize)
	writeProfileLine(&b, "Job titles", icp.TargetJobTitles)
	writeProfileLine(&b, "Region", icp.GeographicRegion)
	writeProfileLine(&b, "Technology", icp.TechnologyUsed)
	writeProfileLine(&b, "Pain points", icp.PainPoints)
	b.WriteString("\nSearch evidence:\n\n")
	b.WriteString(pool)
	b.WriteString("\nExtract every distinct lead supported by the evidence above as a JSON array.")
	return b.String()
}

func writeProfileLine(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}

// buildEvidencePool formats retrieval results into the prompt context,
// keeping within budget by dropping whole intent groups lowest priority
// first, then truncating within the lowest surviving group. Returns the
// formatted pool and the set of URLs that made it in.
func buildEvidencePool(results []model.RetrievalResult, maxChars int) (string, map[string]bool) {
	groups := make(map[model.QueryIntent][]model.RetrievalResult)
	for _, r := range results {
		groups[r.Intent] = append(groups[r.Intent], r)
	}

	intents := make([]model.QueryIntent, 0, len(groups))
	for intent := range groups {
		intents = append(intents, intent)
	}
	sort.Slice(intents, func(i, j int) bool {
		return intents[i].Priority() > intents[j].Priority()
	})

	var b strings.Builder
	urls := make(map[string]bool)
	for _, intent := range intents {
		for _, r := range groups[intent] {
			entry := formatEvidence(r)
			if maxChars > 0 && b.Len()+len(entry) > maxChars {
				return b.String(), urls
			}
			b.WriteString(entry)
			urls[r.URL] = true
		}
	}
	return b.String(), urls
}

func formatEvidence(r model.RetrievalResult) string {
	return fmt.Sprintf("--- %s [%s]\nURL: %s\n%s\n\n", r.Title, r.Intent, r.URL, r.Snippet)
}

// parseExtraction strips markdown fences and decodes the lead array.
func parseExtraction(raw string) ([]extractedLead, error) {
	cleaned := cleanJSON(raw)
	if cleaned == "" {
		return nil, eris.New("response contains no JSON array")
	}
	var leads []extractedLead
	if err := json.Unmarshal([]byte(cleaned), &leads); err != nil {
		return nil, eris.Wrap(err, "response is not a valid lead array")
	}
	return leads, nil
}

func cleanJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}

// toLeadRecords converts wire leads to domain records, normalizing
// placeholder values and rejecting records whose source_url is not in
// the evidence pool.
func toLeadRecords(leads []extractedLead, urls map[string]bool) []model.LeadRecord {
	now := time.Now().UTC()
	records := make([]model.LeadRecord, 0, len(leads))
	for _, l := range leads {
		l = normalizePlaceholders(l)
		if l.LeadName == "" && l.CompanyName == "" {
			continue
		}
		if l.SourceURL == "" || !urls[l.SourceURL] {
			zap.L().Warn("dropping lead with unverifiable source url",
				zap.String("lead", l.LeadName),
				zap.String("source_url", l.SourceURL))
			continue
		}

		rec := model.LeadRecord{
			Lead: model.Lead{
				Name:        l.LeadName,
				Designation: l.Designation,
				CompanyName: l.CompanyName,
				SourceURL:   l.SourceURL,
				ContactDetails: model.ContactDetails{
					Email:    l.Email,
					Phone:    l.Phone,
					LinkedIn: l.LinkedIn,
				},
				SocialProfiles: model.SocialProfiles{
					Twitter:  l.Twitter,
					Facebook: l.Facebook,
					GitHub:   l.GitHub,
				},
			},
			Company: model.Company{
				Name:         l.CompanyName,
				About:        l.CompanyAbout,
				Industry:     l.CompanyIndustry,
				Size:         l.CompanySize,
				Location:     l.CompanyLocation,
				Address:      l.CompanyAddress,
				Website:      l.CompanyWebsite,
				ContactEmail: l.CompanyEmail,
				ContactPhone: l.CompanyPhone,
				TechStack:    l.CompanyTech,
				Revenue:      l.CompanyRevenue,
				FoundedYear:  l.CompanyFounded,
				Funding:      l.CompanyFunding,
				RecentNews:   l.CompanyNews,
			},
			Metadata: model.Metadata{
				ExtractionTimestamp: now,
				SourceURL:           l.SourceURL,
			},
		}
		if rec.Lead.ContactDetails.Email != "" {
			rec.Lead.ContactDetails.EmailSource = model.EmailSourceExtracted
		}
		records = append(records, rec)
	}
	return records
}

// placeholderValues are model outputs that mean "no data".
var placeholderValues = map[string]bool{
	"not found":      true,
	"n/a":            true,
	"na":             true,
	"none":           true,
	"unknown":        true,
	"not available":  true,
	"not applicable": true,
	"null":           true,
	"-":              true,
}

func normalizePlaceholders(l extractedLead) extractedLead {
	fields := []*string{
		&l.LeadName, &l.Designation, &l.CompanyName, &l.SourceURL,
		&l.Email, &l.Phone, &l.LinkedIn, &l.Twitter, &l.Facebook, &l.GitHub,
		&l.CompanyAbout, &l.CompanyIndustry, &l.CompanySize, &l.CompanyLocation,
		&l.CompanyAddress, &l.CompanyWebsite, &l.CompanyEmail, &l.CompanyPhone,
		&l.CompanyTech, &l.CompanyRevenue, &l.CompanyFounded, &l.CompanyFunding,
		&l.CompanyNews,
	}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
		if placeholderValues[strings.ToLower(*f)] {
			*f = ""
		}
	}
	return l
}
