package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscout/internal/model"
)

func TestSynthesizeEmails_Patterns(t *testing.T) {
	primary, alts := synthesizeEmails("Jane Doe", "https://www.acme.io/about")
	assert.Equal(t, "jane.doe@acme.io", primary)
	assert.Equal(t, []string{
		"janedoe@acme.io",
		"jane@acme.io",
		"jdoe@acme.io",
		"jane_doe@acme.io",
		"doe.jane@acme.io",
		"j.doe@acme.io",
	}, alts)
}

func TestSynthesizeEmails_MiddleNameDiscarded(t *testing.T) {
	primary, _ := synthesizeEmails("Jane Q. Doe", "acme.io")
	assert.Equal(t, "jane.doe@acme.io", primary)
}

func TestSynthesizeEmails_Unusable(t *testing.T) {
	primary, alts := synthesizeEmails("Jane", "acme.io")
	assert.Empty(t, primary)
	assert.Nil(t, alts)

	primary, _ = synthesizeEmails("Jane Doe", "")
	assert.Empty(t, primary)

	// Domain without a dot is not a usable mail domain.
	primary, _ = synthesizeEmails("Jane Doe", "localhost")
	assert.Empty(t, primary)
}

func TestDomainFromWebsite(t *testing.T) {
	assert.Equal(t, "acme.io", domainFromWebsite("https://www.acme.io/pricing?x=1"))
	assert.Equal(t, "acme.io", domainFromWebsite("acme.io"))
	assert.Equal(t, "acme.io", domainFromWebsite("http://acme.io:8080/a"))
	assert.Equal(t, "", domainFromWebsite("not a domain"))
}

func TestEnrichContact_SynthesizesAndFlags(t *testing.T) {
	rec := model.LeadRecord{
		Lead:    model.Lead{Name: "Jane Doe", CompanyName: "Acme"},
		Company: model.Company{Name: "Acme", Website: "https://acme.io"},
	}

	EnrichContact(&rec, 50)

	assert.Equal(t, "jane.doe@acme.io", rec.Lead.ContactDetails.Email)
	assert.Len(t, rec.Lead.ContactDetails.EmailAlts, 6)
	assert.Equal(t, model.EmailSourcePattern, rec.Lead.ContactDetails.EmailSource)
	assert.True(t, rec.Metadata.EmailGenerated)
	// A synthesized email alone never yields High quality.
	assert.Equal(t, model.ContactQualityLow, rec.Metadata.ContactQuality)
}

func TestEnrichContact_KeepsExtractedEmail(t *testing.T) {
	rec := model.LeadRecord{
		Lead: model.Lead{
			Name: "Jane Doe",
			ContactDetails: model.ContactDetails{
				Email:       "jane@acme.io",
				EmailSource: model.EmailSourceExtracted,
			},
		},
		Company: model.Company{Website: "https://acme.io"},
	}

	EnrichContact(&rec, 50)

	assert.Equal(t, "jane@acme.io", rec.Lead.ContactDetails.Email)
	assert.False(t, rec.Metadata.EmailGenerated)
	assert.Equal(t, model.ContactQualityHigh, rec.Metadata.ContactQuality)
}

func TestComputeCompleteness_Counting(t *testing.T) {
	rec := model.LeadRecord{
		Lead: model.Lead{
			Name:        "Jane Doe",
			Designation: "CTO",
			CompanyName: "Acme",
			SourceURL:   "https://src.example",
			ContactDetails: model.ContactDetails{
				Email: "jane@acme.io",
				Phone: "+1 555 0100",
			},
		},
		Company: model.Company{
			Name:     "Acme",
			Industry: "SaaS",
			Location: "California",
			Website:  "https://acme.io",
			About:    "tooling",
			Size:     "50-200",
		},
	}

	c := computeCompleteness(&rec, 50)
	assert.Equal(t, 12, c.FilledFields)
	assert.Equal(t, 24, c.TotalFields)
	assert.Equal(t, 50, c.Percentage)
	assert.Equal(t, model.CompletenessComplete, c.Status)
}

func TestComputeCompleteness_PercentAloneIsNotComplete(t *testing.T) {
	// Plenty of company data but no contact channel on the lead.
	rec := model.LeadRecord{
		Lead: model.Lead{Name: "Jane Doe", Designation: "CTO", CompanyName: "Acme", SourceURL: "https://s"},
		Company: model.Company{
			Name: "Acme", About: "a", Industry: "b", Size: "c", Location: "d",
			Address: "e", Website: "https://acme.io", ContactEmail: "f", ContactPhone: "g",
			TechStack: "h", Revenue: "i", FoundedYear: "j", Funding: "k", RecentNews: "l",
		},
	}

	c := computeCompleteness(&rec, 50)
	require.GreaterOrEqual(t, c.Percentage, 50)
	assert.Equal(t, model.CompletenessPartial, c.Status)
}

func TestComputeCompleteness_NoCompanyIdentity(t *testing.T) {
	rec := model.LeadRecord{
		Lead: model.Lead{
			Name: "Jane Doe", Designation: "CTO", CompanyName: "Acme", SourceURL: "https://s",
			ContactDetails: model.ContactDetails{Email: "a", Phone: "b", LinkedIn: "c"},
			SocialProfiles: model.SocialProfiles{Twitter: "d", Facebook: "e", GitHub: "f"},
		},
		Company: model.Company{Name: "Acme", Industry: "SaaS"},
	}

	c := computeCompleteness(&rec, 50)
	assert.Equal(t, model.CompletenessPartial, c.Status)
}
