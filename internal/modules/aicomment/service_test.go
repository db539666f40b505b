package aicomment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/econlab/hypothesis-core/internal/models"
)

type fakeGenerator struct {
	configured bool
	output     string
	err        error
	lastPrompt string
}

func (f *fakeGenerator) Configured() bool { return f.configured }
func (f *fakeGenerator) Model() string    { return "gemini-2.5-flash" }

func (f *fakeGenerator) Generate(_ context.Context, prompt string, _ int) (string, error) {
	f.lastPrompt = prompt
	return f.output, f.err
}

func newTestService(t *testing.T, gen TextGenerator) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.HypothesisModel{}, &models.DiscussionModel{}))
	return NewService(db, gen, zap.NewNop()), db
}

func seedHypothesis(t *testing.T, db *gorm.DB) models.HypothesisModel {
	t.Helper()
	h := models.HypothesisModel{
		Title:           "ESG投資と企業パフォーマンス",
		Description:     "検証する",
		Category:        "金融経済学",
		Confidence:      92,
		ResearchMethods: models.StringArray{"イベントスタディ"},
		KeyFactors:      models.StringArray{"ESGスコア"},
		NoveltyScore:    88,
	}
	require.NoError(t, db.Create(&h).Error)
	return h
}

func TestCommentOnHypothesis(t *testing.T) {
	gen := &fakeGenerator{configured: true, output: "建設的なコメントです。"}
	svc, db := newTestService(t, gen)
	h := seedHypothesis(t, db)

	entry, err := svc.CommentOnHypothesis(context.Background(), h.ID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "Gemini AI Assistant", entry.AuthorName)
	assert.Equal(t, "AI Research Assistant", entry.AuthorAffiliation)
	assert.Equal(t, models.CommentTypeAI, entry.CommentType)
	assert.Equal(t, "gemini-2.5-flash", entry.AIModel)
	assert.Nil(t, entry.ParentID)
	assert.Contains(t, gen.lastPrompt, h.Title)
	assert.Contains(t, gen.lastPrompt, "【コメント要件】")
}

func TestCommentIncludesRecentDiscussions(t *testing.T) {
	gen := &fakeGenerator{configured: true, output: "コメント"}
	svc, db := newTestService(t, gen)
	h := seedHypothesis(t, db)

	require.NoError(t, db.Create(&models.DiscussionModel{
		HypothesisID: h.ID,
		AuthorName:   "Aoi",
		Content:      "先行研究との関係が気になります",
		CommentType:  models.CommentTypeUser,
	}).Error)

	_, err := svc.CommentOnHypothesis(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Contains(t, gen.lastPrompt, "【既存のディスカッション】")
	assert.Contains(t, gen.lastPrompt, "Aoi")
}

func TestCommentOnMissingHypothesis(t *testing.T) {
	svc, _ := newTestService(t, &fakeGenerator{configured: true, output: "x"})

	_, err := svc.CommentOnHypothesis(context.Background(), 9999)
	assert.ErrorIs(t, err, errHypothesisNotFound)
}

func TestCommentGenerationFailureReturnsNil(t *testing.T) {
	svc, db := newTestService(t, &fakeGenerator{configured: true, err: errors.New("quota exceeded")})
	h := seedHypothesis(t, db)

	entry, err := svc.CommentOnHypothesis(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Nil(t, entry)

	var count int64
	require.NoError(t, db.Model(&models.DiscussionModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReplyToComment(t *testing.T) {
	gen := &fakeGenerator{configured: true, output: "返信です。"}
	svc, db := newTestService(t, gen)
	h := seedHypothesis(t, db)

	original := models.DiscussionModel{
		HypothesisID: h.ID,
		AuthorName:   "Aoi",
		Content:      "データの入手可能性はどうでしょうか",
		CommentType:  models.CommentTypeUser,
	}
	require.NoError(t, db.Create(&original).Error)

	entry, err := svc.ReplyToComment(context.Background(), original.ID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.NotNil(t, entry.ParentID)
	assert.Equal(t, original.ID, *entry.ParentID)
	assert.Equal(t, h.ID, entry.HypothesisID)
	assert.Contains(t, gen.lastPrompt, "【元のコメント】")
	assert.Contains(t, gen.lastPrompt, original.Content)

	_, err = svc.ReplyToComment(context.Background(), 9999)
	assert.ErrorIs(t, err, errCommentNotFound)
}

func TestShouldAutoComment(t *testing.T) {
	svc, db := newTestService(t, &fakeGenerator{configured: true})
	h1 := seedHypothesis(t, db)
	h2 := seedHypothesis(t, db)

	seed := func(hid uint, n int, ct models.CommentType) {
		for i := 0; i < n; i++ {
			require.NoError(t, db.Create(&models.DiscussionModel{
				HypothesisID: hid,
				AuthorName:   "x",
				Content:      "c",
				CommentType:  ct,
			}).Error)
		}
	}

	// No comments yet.
	assert.True(t, svc.ShouldAutoComment(h1.ID))

	// 2 AI of 10 total is under the 30% threshold.
	seed(h1.ID, 2, models.CommentTypeAI)
	seed(h1.ID, 8, models.CommentTypeUser)
	assert.True(t, svc.ShouldAutoComment(h1.ID))

	// 3 AI of 10 total reaches it.
	seed(h2.ID, 3, models.CommentTypeAI)
	seed(h2.ID, 7, models.CommentTypeUser)
	assert.False(t, svc.ShouldAutoComment(h2.ID))
}

func TestBatchProcess(t *testing.T) {
	gen := &fakeGenerator{configured: true, output: "コメント"}
	svc, db := newTestService(t, gen)
	h1 := seedHypothesis(t, db)
	h2 := seedHypothesis(t, db)

	// Saturate h2 with AI comments so it gets skipped.
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.DiscussionModel{
			HypothesisID: h2.ID,
			AuthorName:   "Gemini AI Assistant",
			Content:      "c",
			CommentType:  models.CommentTypeAI,
		}).Error)
	}

	results := svc.BatchProcess(context.Background(), nil)
	require.Len(t, results, 2)

	byID := map[uint]batchResult{}
	for _, r := range results {
		byID[r.HypothesisID] = r
	}
	assert.Equal(t, batchStatusSuccess, byID[h1.ID].Status)
	assert.NotZero(t, byID[h1.ID].DiscussionID)
	assert.Equal(t, batchStatusSkipped, byID[h2.ID].Status)
	assert.Equal(t, "AI comment not needed", byID[h2.ID].Reason)
}
