package feedback

import (
	"encoding/json"
	"fmt"
	"time"
)

// IssueTitle builds the title used for feedback issues.
func IssueTitle(hypothesisTitle string) string {
	return "フィードバック: " + hypothesisTitle
}

// IssueLabels returns the labels attached to a feedback issue.
func IssueLabels(hypothesisID uint) []string {
	return []string{"feedback", "user-input", fmt.Sprintf("hypothesis-%d", hypothesisID)}
}

// IssueBody renders a feedback as the Markdown issue body. The body carries a
// structured JSON block so it can be parsed back without scraping the prose.
func IssueBody(hypothesisID uint, hypothesisTitle string, fb Feedback, now time.Time) string {
	structured, _ := json.MarshalIndent(fb, "", "  ")

	return fmt.Sprintf(`## 仮説へのフィードバック

**仮説ID**: %d
**仮説タイトル**: %s

### 評価
- **妥当性**: %d/5 ⭐
- **実現可能性**: %d/5 ⭐
- **新規性**: %d/5 ⭐
- **政策的重要性**: %d/5 ⭐
- **総合評価**: %d/5 ⭐

### コメント
%s

### 改善提案
%s

### 関連研究
%s

### 研究者情報
%s

---

**フィードバック送信日時**: %s

### 構造化データ
`+"```json"+`
{
  "hypothesis_id": %d,
  "feedback": %s
}
`+"```"+`

---

このフィードバックは経済学仮説生成システムから自動投稿されました。
`,
		hypothesisID, hypothesisTitle,
		fb.Validity, fb.Feasibility, fb.Novelty, fb.PolicyImportance, fb.Overall,
		orDefault(fb.Comment, "なし"),
		orDefault(fb.Suggestions, "なし"),
		orDefault(fb.RelatedResearch, "なし"),
		orDefault(fb.ReviewerInfo, "匿名"),
		now.Format("2006年01月02日 15:04:05"),
		hypothesisID, string(structured))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
