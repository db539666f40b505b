package feedback

import (
	"encoding/json"
	"regexp"
	"strconv"

	"github.com/econlab/hypothesis-core/internal/pkg/github"
)

var jsonBlockPattern = regexp.MustCompile("(?s)```json\n(.*?)\n```")

var ratingPatterns = map[string]*regexp.Regexp{
	"validity":          regexp.MustCompile(`\*\*妥当性\*\*:\s*(\d+)/5`),
	"feasibility":       regexp.MustCompile(`\*\*実現可能性\*\*:\s*(\d+)/5`),
	"novelty":           regexp.MustCompile(`\*\*新規性\*\*:\s*(\d+)/5`),
	"policy_importance": regexp.MustCompile(`\*\*政策的重要性\*\*:\s*(\d+)/5`),
	"overall":           regexp.MustCompile(`\*\*総合評価\*\*:\s*(\d+)/5`),
}

var hypothesisIDPattern = regexp.MustCompile(`\*\*仮説ID\*\*:\s*(\d+)`)

// ExtractFeedback pulls the feedback out of one issue body. The structured
// JSON block wins; bodies without one fall back to scraping the rating lines.
func ExtractFeedback(issue github.Issue) (uint, Feedback, bool) {
	if m := jsonBlockPattern.FindStringSubmatch(issue.Body); m != nil {
		var parsed struct {
			HypothesisID uint     `json:"hypothesis_id"`
			Feedback     Feedback `json:"feedback"`
		}
		if err := json.Unmarshal([]byte(m[1]), &parsed); err == nil && parsed.HypothesisID > 0 {
			return parsed.HypothesisID, parsed.Feedback, true
		}
	}

	var fb Feedback
	found := false
	for key, pattern := range ratingPatterns {
		m := pattern.FindStringSubmatch(issue.Body)
		if m == nil {
			continue
		}
		value, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		found = true
		switch key {
		case "validity":
			fb.Validity = value
		case "feasibility":
			fb.Feasibility = value
		case "novelty":
			fb.Novelty = value
		case "policy_importance":
			fb.PolicyImportance = value
		case "overall":
			fb.Overall = value
		}
	}

	idMatch := hypothesisIDPattern.FindStringSubmatch(issue.Body)
	if idMatch == nil || !found {
		return 0, Feedback{}, false
	}
	id, err := strconv.ParseUint(idMatch[1], 10, 32)
	if err != nil || id == 0 {
		return 0, Feedback{}, false
	}
	return uint(id), fb, true
}

// ParseIssues groups the parseable feedback entries by hypothesis id.
// Unparseable issues are skipped.
func ParseIssues(issues []github.Issue) map[uint][]Entry {
	grouped := make(map[uint][]Entry)
	for _, issue := range issues {
		id, fb, ok := ExtractFeedback(issue)
		if !ok {
			continue
		}
		grouped[id] = append(grouped[id], Entry{
			Feedback:    fb,
			Timestamp:   issue.CreatedAt,
			IssueNumber: issue.Number,
			IssueURL:    issue.HTMLURL,
		})
	}
	return grouped
}
