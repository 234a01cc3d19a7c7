package store

import (
	"github.com/chirpnet/chirp/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateComment is idempotent on the full (user, tweet, parent, content)
// tuple: resubmitting the same comment returns the existing record.
func (s *Store) CreateComment(userID string, tweetID string, req *model.CreateCommentRequest) (*model.Comment, error) {
	if _, err := s.GetTweet(tweetID); err != nil {
		return nil, err
	}
	if req.ParentID != nil {
		var parent model.Comment
		queryResult := s.db.Where("id = ? AND tweet_id = ?", *req.ParentID, tweetID).First(&parent)
		if queryResult.Error != nil && !errors.Is(queryResult.Error, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(queryResult.Error, "fail to check parent comment")
		}
		if queryResult.RowsAffected != 1 {
			return nil, model.NewValidationError("parent comment not found")
		}
	}

	comment := model.Comment{
		UserID:   userID,
		TweetID:  tweetID,
		ParentID: req.ParentID,
		Content:  req.Content,
	}
	query := s.db.Where("user_id = ? AND tweet_id = ? AND content = ?", userID, tweetID, req.Content)
	if req.ParentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *req.ParentID)
	}
	if err := query.Attrs(model.Comment{Id: uuid.New().String()}).
		FirstOrCreate(&comment).Error; err != nil {
		return nil, errors.Wrap(err, "fail to create comment")
	}
	return &comment, nil
}

// ListComments returns one page of top-level comments for a tweet together
// with author summaries and one level of replies, plus the total top-level
// count for page computation.
func (s *Store) ListComments(tweetID string, p model.Pagination) ([]*model.CommentView, int64, error) {
	var parents []*model.Comment
	if err := s.db.Preload("User").
		Where("tweet_id = ? AND parent_id IS NULL", tweetID).
		Order("created_at desc").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&parents).Error; err != nil {
		return nil, 0, errors.Wrap(err, "fail to list comments")
	}

	var total int64
	if err := s.db.Model(&model.Comment{}).
		Where("tweet_id = ? AND parent_id IS NULL", tweetID).
		Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "fail to count comments")
	}

	parentIDs := make([]string, 0, len(parents))
	for _, parent := range parents {
		parentIDs = append(parentIDs, parent.Id)
	}

	var replies []*model.Comment
	if len(parentIDs) > 0 {
		if err := s.db.Preload("User").
			Where("parent_id IN ?", parentIDs).
			Order("created_at asc").
			Find(&replies).Error; err != nil {
			return nil, 0, errors.Wrap(err, "fail to load replies")
		}
	}

	repliesByParent := map[string][]model.CommentView{}
	for _, reply := range replies {
		repliesByParent[*reply.ParentID] = append(repliesByParent[*reply.ParentID], commentView(reply, nil))
	}

	views := make([]*model.CommentView, 0, len(parents))
	for _, parent := range parents {
		view := commentView(parent, repliesByParent[parent.Id])
		views = append(views, &view)
	}
	return views, total, nil
}

func commentView(comment *model.Comment, replies []model.CommentView) model.CommentView {
	view := model.CommentView{
		Id:        comment.Id,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		Replies:   replies,
	}
	if comment.User != nil {
		view.User = comment.User.Summary()
	}
	if view.Replies == nil {
		view.Replies = []model.CommentView{}
	}
	return view
}
