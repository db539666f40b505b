package discussion

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/econlab/hypothesis-core/internal/models"
	"github.com/econlab/hypothesis-core/internal/pkg/pagination"
)

type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// ListByHypothesis returns the top-level discussions of a hypothesis,
// newest first.
func (s *Service) ListByHypothesis(hypothesisID uint, q pagination.Query) ([]discussionResponse, pagination.Meta, error) {
	var items []models.DiscussionModel
	query := s.db.Model(&models.DiscussionModel{}).
		Where("hypothesis_id = ? AND parent_id IS NULL", hypothesisID).
		Order("created_at DESC")

	meta, err := pagination.Paginate(query, q, &items)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	responses, err := s.toResponses(items)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return responses, meta, nil
}

// Replies returns the direct replies of a discussion, oldest first.
func (s *Service) Replies(parentID uint) ([]discussionResponse, error) {
	if err := s.ensureExists(parentID); err != nil {
		return nil, err
	}

	var items []models.DiscussionModel
	err := s.db.
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return s.toResponses(items)
}

func (s *Service) Create(dto CreateDTO) (*discussionResponse, error) {
	if err := dto.validate(); err != nil {
		return nil, err
	}

	commentType := models.CommentType(dto.CommentType)
	if commentType == "" {
		commentType = models.CommentTypeUser
	}

	entry := models.DiscussionModel{
		HypothesisID:      dto.HypothesisID,
		AuthorName:        dto.AuthorName,
		AuthorEmail:       dto.AuthorEmail,
		AuthorAffiliation: dto.AuthorAffiliation,
		Content:           dto.Content,
		CommentType:       commentType,
		AIModel:           dto.AIModel,
		ParentID:          dto.ParentID,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return s.toResponse(entry)
}

func (s *Service) Update(id uint, dto UpdateDTO) (*discussionResponse, error) {
	var entry models.DiscussionModel
	if err := s.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errDiscussionNotFound
		}
		return nil, err
	}

	if dto.Content != nil {
		entry.Content = *dto.Content
	}
	if dto.AuthorAffiliation != nil {
		entry.AuthorAffiliation = *dto.AuthorAffiliation
	}
	if err := s.db.Save(&entry).Error; err != nil {
		return nil, err
	}
	return s.toResponse(entry)
}

// Delete removes a discussion and its direct replies. Replies of replies are
// left in place; threads only nest one level in practice.
func (s *Service) Delete(id uint) error {
	if err := s.ensureExists(id); err != nil {
		return err
	}

	if err := s.db.Where("parent_id = ?", id).Delete(&models.DiscussionModel{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.DiscussionModel{}, id).Error
}

// Like atomically increments the like counter and returns both counters.
func (s *Service) Like(id uint) (likes, dislikes int, err error) {
	return s.bumpCounter(id, "likes")
}

// Dislike atomically increments the dislike counter and returns both counters.
func (s *Service) Dislike(id uint) (likes, dislikes int, err error) {
	return s.bumpCounter(id, "dislikes")
}

func (s *Service) bumpCounter(id uint, column string) (int, int, error) {
	if err := s.ensureExists(id); err != nil {
		return 0, 0, err
	}

	err := s.db.Model(&models.DiscussionModel{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
	if err != nil {
		return 0, 0, err
	}

	var entry models.DiscussionModel
	if err := s.db.First(&entry, id).Error; err != nil {
		return 0, 0, err
	}
	return entry.Likes, entry.Dislikes, nil
}

// Stats aggregates one hypothesis's thread.
func (s *Service) Stats(hypothesisID uint) (*statsData, error) {
	stats := &statsData{}

	err := s.db.Model(&models.DiscussionModel{}).
		Where("hypothesis_id = ?", hypothesisID).
		Count(&stats.TotalDiscussions).Error
	if err != nil {
		return nil, err
	}
	err = s.db.Model(&models.DiscussionModel{}).
		Where("hypothesis_id = ? AND comment_type = ?", hypothesisID, models.CommentTypeUser).
		Count(&stats.UserDiscussions).Error
	if err != nil {
		return nil, err
	}
	err = s.db.Model(&models.DiscussionModel{}).
		Where("hypothesis_id = ? AND comment_type = ?", hypothesisID, models.CommentTypeAI).
		Count(&stats.AIDiscussions).Error
	if err != nil {
		return nil, err
	}

	var latest models.DiscussionModel
	err = s.db.
		Where("hypothesis_id = ?", hypothesisID).
		Order("created_at DESC").
		First(&latest).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return stats, nil
	}

	resp, err := s.toResponse(latest)
	if err != nil {
		return nil, err
	}
	stats.LatestDiscussion = resp
	return stats, nil
}

func (s *Service) ensureExists(id uint) error {
	var count int64
	if err := s.db.Model(&models.DiscussionModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errDiscussionNotFound
	}
	return nil
}

func (s *Service) toResponse(entry models.DiscussionModel) (*discussionResponse, error) {
	responses, err := s.toResponses([]models.DiscussionModel{entry})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// toResponses converts rows to wire entries, resolving reply counts with a
// single grouped query.
func (s *Service) toResponses(items []models.DiscussionModel) ([]discussionResponse, error) {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	counts := make(map[uint]int64, len(ids))
	if len(ids) > 0 {
		var rows []struct {
			ParentID uint
			Count    int64
		}
		err := s.db.Model(&models.DiscussionModel{}).
			Select("parent_id, COUNT(*) AS count").
			Where("parent_id IN ?", ids).
			Group("parent_id").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			counts[row.ParentID] = row.Count
		}
	}

	responses := make([]discussionResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, discussionResponse{
			ID:                item.ID,
			HypothesisID:      item.HypothesisID,
			AuthorName:        item.AuthorName,
			AuthorEmail:       item.AuthorEmail,
			AuthorAffiliation: item.AuthorAffiliation,
			Content:           item.Content,
			CommentType:       string(item.CommentType),
			AIModel:           item.AIModel,
			CreatedAt:         item.CreatedAt,
			UpdatedAt:         item.UpdatedAt,
			Likes:             item.Likes,
			Dislikes:          item.Dislikes,
			ParentID:          item.ParentID,
			ReplyCount:        counts[item.ID],
		})
	}
	return responses, nil
}
