package model

// QueryIntent tags a search query with the kind of evidence it is expected
// to surface. Intents diversify the query set so extraction sees
// heterogeneous sources.
type QueryIntent string

const (
	IntentProfessionalNetwork QueryIntent = "professional_network"
	IntentDirectory           QueryIntent = "directory"
	IntentDatabase            QueryIntent = "database"
	IntentCompanyPage         QueryIntent = "company_page"
	IntentTechStack           QueryIntent = "tech_stack"
	IntentEmailPattern        QueryIntent = "email_pattern"
	IntentHiringNews          QueryIntent = "hiring_news"
	IntentSocialProfile       QueryIntent = "social_profile"
)

// intentPriority orders intents by evidence value. Higher values survive
// context truncation longer: when the pooled evidence exceeds the model's
// context budget, whole groups are dropped lowest-priority first.
var intentPriority = map[QueryIntent]int{
	IntentProfessionalNetwork: 8,
	IntentDirectory:           7,
	IntentDatabase:            6,
	IntentCompanyPage:         5,
	IntentTechStack:           4,
	IntentEmailPattern:        3,
	IntentHiringNews:          2,
	IntentSocialProfile:       1,
}

// Priority returns the truncation priority of an intent. Unknown intents
// rank lowest.
func (i QueryIntent) Priority() int {
	return intentPriority[i]
}

// SearchQuery is one literal query string derived from an ICP, tagged with
// its intent. Query order is significant only for logging.
type SearchQuery struct {
	Intent QueryIntent `json:"intent"`
	Query  string      `json:"query"`
}

// RetrievalResult is one normalized hit from the retrieval backend. Results
// are pooled as extraction context and discarded at response time.
type RetrievalResult struct {
	Title   string      `json:"title"`
	Snippet string      `json:"snippet"`
	URL     string      `json:"url"`
	Intent  QueryIntent `json:"intent"`
}
