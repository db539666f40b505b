package aicomment

import (
	"fmt"
	"strings"

	"github.com/econlab/hypothesis-core/internal/models"
)

// buildCommentPrompt asks the model to comment on a hypothesis, optionally
// showing it the three most recent discussion entries for context.
func buildCommentPrompt(h models.HypothesisModel, recent []models.DiscussionModel) string {
	var b strings.Builder

	fmt.Fprintf(&b, `あなたは経済学の専門家として、以下の研究仮説について建設的で洞察に富んだコメントを提供してください。

【研究仮説】
タイトル: %s
説明: %s
カテゴリ: %s
信頼度: %d%%
新規性スコア: %d%%
研究手法: %s
重要要因: %s

`, h.Title, h.Description, h.Category, h.Confidence, h.NoveltyScore,
		strings.Join(h.ResearchMethods, ", "), strings.Join(h.KeyFactors, ", "))

	if len(recent) > 0 {
		b.WriteString("\n【既存のディスカッション】\n")
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		for _, d := range recent {
			content := d.Content
			if len([]rune(content)) > 200 {
				content = string([]rune(content)[:200])
			}
			fmt.Fprintf(&b, "- %s: %s...\n", d.AuthorName, content)
		}
	}

	b.WriteString(`
【コメント要件】
1. 経済学の専門知識に基づいた分析的なコメント
2. 仮説の強みと改善点の両方を指摘
3. 具体的な研究手法や検証方法の提案
4. 関連する経済理論や先行研究への言及
5. 政策的な観点からの考察
6. 200-400文字程度の適切な長さ

建設的で学術的なコメントをお願いします。`)

	return b.String()
}

// buildReplyPrompt asks the model to reply to an existing comment.
func buildReplyPrompt(original models.DiscussionModel, h models.HypothesisModel) string {
	return fmt.Sprintf(`あなたは経済学の専門家として、以下のコメントに対して建設的な返信を提供してください。

【元の研究仮説】
タイトル: %s
説明: %s

【元のコメント】
投稿者: %s
内容: %s

【返信要件】
1. 元のコメントの内容を踏まえた適切な応答
2. 追加的な視点や補完的な情報の提供
3. 建設的な議論の促進
4. 具体的な例や事例の提示（可能であれば）
5. 150-300文字程度の適切な長さ

学術的で建設的な返信をお願いします。`, h.Title, h.Description, original.AuthorName, original.Content)
}
