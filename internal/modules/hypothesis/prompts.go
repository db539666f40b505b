package hypothesis

import "fmt"

// economicSnapshot is the indicator set fed into the generation prompt.
// A real deployment would pull these from market data APIs.
const economicSnapshot = `- GDP成長率: 2.1%
- インフレ率: 3.2%
- 失業率: 3.8%
- 政策金利: 5.25%
- 株式市場動向: 上昇
- 為替レート: USD/JPY 150.25, EUR/JPY 162.80
- 商品価格: 原油 $85.50, 金 $2050.00
- 最近の経済イベント: 中央銀行の金利政策変更, 新しい貿易協定の締結, デジタル通貨に関する規制発表`

// buildGenerationPrompt asks the model for count new hypotheses grounded in
// recent economic indicators.
func buildGenerationPrompt(count int) string {
	return fmt.Sprintf(`あなたは経済学の専門家です。以下の最新経済データを分析し、革新的で実証可能な研究仮説を%dつ生成してください。

【経済データ】
%s

【要求事項】
1. 各仮説は具体的で検証可能であること
2. 現在の経済状況を反映した内容であること
3. 既存研究との差別化が明確であること
4. 実証研究の手法も提案すること

【出力形式】
以下のJSON形式で回答してください：

{
  "hypotheses": [
    {
      "title": "仮説のタイトル",
      "description": "仮説の詳細説明（200文字程度）",
      "category": "研究分野（例：金融政策、労働経済学、国際経済学）",
      "confidence": 85,
      "research_methods": ["推奨研究手法1", "推奨研究手法2", "推奨研究手法3"],
      "key_factors": ["重要要因1", "重要要因2", "重要要因3"],
      "novelty_score": 90,
      "feasibility_score": 80
    }
  ]
}`, count, economicSnapshot)
}
