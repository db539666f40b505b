package hypothesis

import "github.com/econlab/hypothesis-core/internal/models"

// sampleHypotheses is the built-in set used when no generation backend is
// configured, so the system stays usable without an API key.
func sampleHypotheses() []models.HypothesisModel {
	return []models.HypothesisModel{
		{
			Title:            "デジタル通貨普及と消費者行動の変化",
			Description:      "中央銀行デジタル通貨（CBDC）の導入が消費者の支払い行動と貯蓄パターンに与える影響について、行動経済学の観点から分析する必要がある。",
			Category:         "金融政策",
			Confidence:       85,
			ResearchMethods:  models.StringArray{"実験経済学", "フィールド調査", "データマイニング"},
			KeyFactors:       models.StringArray{"プライバシー懸念", "利便性", "金融包摂"},
			NoveltyScore:     90,
			FeasibilityScore: 80,
		},
		{
			Title:            "リモートワークと地域経済格差",
			Description:      "コロナ後のリモートワーク普及により、都市部から地方への人口移動が地域間の経済格差に与える長期的影響を分析する。",
			Category:         "労働経済学",
			Confidence:       78,
			ResearchMethods:  models.StringArray{"パネルデータ分析", "空間経済学モデル", "質的調査"},
			KeyFactors:       models.StringArray{"住宅価格", "インフラ整備", "教育機会"},
			NoveltyScore:     85,
			FeasibilityScore: 75,
		},
		{
			Title:            "ESG投資と企業パフォーマンス",
			Description:      "環境・社会・ガバナンス（ESG）要因を重視した投資戦略が、長期的な企業価値と株主リターンに与える因果関係を検証する。",
			Category:         "金融経済学",
			Confidence:       92,
			ResearchMethods:  models.StringArray{"イベントスタディ", "回帰分析", "機械学習"},
			KeyFactors:       models.StringArray{"ESGスコア", "業界特性", "規制環境"},
			NoveltyScore:     88,
			FeasibilityScore: 90,
		},
		{
			Title:            "AI技術導入と労働市場の構造変化",
			Description:      "人工知能技術の普及が職種別労働需要と賃金格差に与える影響を、技能偏向的技術進歩の理論を用いて分析する。",
			Category:         "労働経済学",
			Confidence:       87,
			ResearchMethods:  models.StringArray{"差分の差分法", "機械学習", "職業分析"},
			KeyFactors:       models.StringArray{"技能代替性", "教育水準", "産業構造"},
			NoveltyScore:     92,
			FeasibilityScore: 85,
		},
		{
			Title:            "サステナブル消費と価格プレミアム",
			Description:      "環境配慮型商品に対する消費者の支払意思額と実際の購買行動の乖離を、行動経済学の認知バイアス理論で説明する。",
			Category:         "消費者行動",
			Confidence:       81,
			ResearchMethods:  models.StringArray{"選択実験", "フィールド実験", "アンケート調査"},
			KeyFactors:       models.StringArray{"環境意識", "所得水準", "社会的規範"},
			NoveltyScore:     86,
			FeasibilityScore: 88,
		},
	}
}
