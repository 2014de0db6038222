package pipeline

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/sells-group/leadscout/internal/model"
)

var keyFolder = cases.Fold()

// identityKey is the dedup key: case-folded, whitespace-collapsed lead
// name plus company name. Folding rather than lowercasing keeps the key
// stable for non-ASCII names.
func identityKey(rec model.LeadRecord) string {
	name := strings.Join(strings.Fields(keyFolder.String(rec.Lead.Name)), " ")
	company := strings.Join(strings.Fields(keyFolder.String(rec.Lead.CompanyName)), " ")
	return name + "|" + company
}

// Aggregate deduplicates scored records and assembles the response
// envelope. On a key collision the survivor is the record with higher
// completeness, then higher confidence, then the one discovered first.
// Survivors are stable-sorted by confidence descending.
func Aggregate(icpName string, records []model.LeadRecord) *model.Envelope {
	byKey := make(map[string]int, len(records))
	kept := make([]model.LeadRecord, 0, len(records))

	for _, rec := range records {
		key := identityKey(rec)
		idx, exists := byKey[key]
		if !exists {
			byKey[key] = len(kept)
			kept = append(kept, rec)
			continue
		}
		if betterRecord(rec, kept[idx]) {
			kept[idx] = rec
		}
	}

	if dropped := len(records) - len(kept); dropped > 0 {
		zap.L().Info("deduplicated leads", zap.Int("dropped", dropped), zap.Int("kept", len(kept)))
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return confidence(kept[i]) > confidence(kept[j])
	})

	return &model.Envelope{
		Success:    true,
		ICPName:    icpName,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		TotalLeads: len(kept),
		Leads:      kept,
	}
}

// betterRecord reports whether candidate should replace incumbent.
func betterRecord(candidate, incumbent model.LeadRecord) bool {
	cc := candidate.Metadata.DataCompleteness.Percentage
	ic := incumbent.Metadata.DataCompleteness.Percentage
	if cc != ic {
		return cc > ic
	}
	return confidence(candidate) > confidence(incumbent)
}

func confidence(rec model.LeadRecord) int {
	if rec.Scoring == nil {
		return 0
	}
	return rec.Scoring.ConfidenceScore
}
