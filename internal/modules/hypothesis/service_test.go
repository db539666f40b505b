package hypothesis

import (
	"bytes"
	"context"
	"encoding/csv"
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

func (f *fakeGenerator) Generate(_ context.Context, prompt string, _ int) (string, error) {
	f.lastPrompt = prompt
	return f.output, f.err
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.HypothesisModel{}, &models.DiscussionModel{}))
	return db
}

func newTestService(t *testing.T, gen TextGenerator) *Service {
	t.Helper()
	return NewService(newTestDB(t), gen, zap.NewNop())
}

func TestGenerateUsesSamplesWithoutBackend(t *testing.T) {
	svc := newTestService(t, &fakeGenerator{configured: false})

	saved, err := svc.Generate(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, saved, 5)
	assert.Equal(t, "デジタル通貨普及と消費者行動の変化", saved[0].Title)
	for _, h := range saved {
		assert.NotZero(t, h.ID)
		assert.False(t, h.GeneratedAt.IsZero())
	}
}

func TestGenerateTruncatesSamples(t *testing.T) {
	svc := newTestService(t, &fakeGenerator{configured: false})

	saved, err := svc.Generate(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, saved, 2)
}

func TestGenerateParsesModelOutput(t *testing.T) {
	gen := &fakeGenerator{
		configured: true,
		output: "```json\n" + `{"hypotheses":[{"title":"t","description":"d","category":"金融政策",` +
			`"confidence":70,"research_methods":["a"],"key_factors":["b"],` +
			`"novelty_score":60,"feasibility_score":50}]}` + "\n```",
	}
	svc := newTestService(t, gen)

	saved, err := svc.Generate(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "t", saved[0].Title)
	assert.Equal(t, models.StringArray{"a"}, saved[0].ResearchMethods)
	assert.Contains(t, gen.lastPrompt, "1つ生成してください")
}

func TestGenerateRejectsMalformedOutput(t *testing.T) {
	svc := newTestService(t, &fakeGenerator{configured: true, output: "not json at all"})

	_, err := svc.Generate(context.Background(), 1)
	assert.ErrorIs(t, err, errBadGeneration)
}

func TestGeneratePropagatesBackendError(t *testing.T) {
	svc := newTestService(t, &fakeGenerator{configured: true, err: errors.New("boom")})

	_, err := svc.Generate(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errBadGeneration)
}

func TestListFilters(t *testing.T) {
	svc := newTestService(t, nil)
	_, err := svc.Generate(context.Background(), 0)
	require.NoError(t, err)

	all, err := svc.List(ListFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	labor, err := svc.List(ListFilters{Category: "労働経済学"})
	require.NoError(t, err)
	assert.Len(t, labor, 2)

	min := 85
	confident, err := svc.List(ListFilters{MinConfidence: &min})
	require.NoError(t, err)
	assert.Len(t, confident, 3)

	search, err := svc.List(ListFilters{Search: "ESG"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "ESG投資と企業パフォーマンス", search[0].Title)
}

func TestStats(t *testing.T) {
	svc := newTestService(t, nil)

	empty, err := svc.Stats()
	require.NoError(t, err)
	assert.Zero(t, empty.TotalHypotheses)
	assert.Zero(t, empty.AverageConfidence)
	assert.Empty(t, empty.Categories)

	_, err = svc.Generate(context.Background(), 0)
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalHypotheses)
	// (85+78+92+87+81)/5 = 84.6
	assert.Equal(t, 84.6, stats.AverageConfidence)
	assert.Equal(t, 4, stats.CategoriesCount)
}

func TestDelete(t *testing.T) {
	svc := newTestService(t, nil)
	saved, err := svc.Generate(context.Background(), 1)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(saved[0].ID))
	assert.ErrorIs(t, svc.Delete(saved[0].ID), errHypothesisNotFound)

	_, err = svc.GetByID(saved[0].ID)
	assert.ErrorIs(t, err, errHypothesisNotFound)
}

func TestWriteCSV(t *testing.T) {
	svc := newTestService(t, nil)

	var empty bytes.Buffer
	require.NoError(t, svc.WriteCSV(&empty))
	records, err := csv.NewReader(&empty).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ID", records[0][0])

	_, err = svc.Generate(context.Background(), 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(&buf))
	records, err = csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, "デジタル通貨普及と消費者行動の変化", records[1][1])
	assert.Equal(t, `["実験経済学","フィールド調査","データマイニング"]`, records[1][5])
}
