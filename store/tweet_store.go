package store

import (
	"github.com/chirpnet/chirp/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateTweet persists a validated tweet request: hashtags are resolved
// find-or-create, mentions are checked for existence, and the parent must
// exist for child tweet types. The whole write is one transaction.
func (s *Store) CreateTweet(authorID string, req *model.CreateTweetRequest) (*model.Tweet, error) {
	if req.Type.RequiresParent() {
		if _, err := s.GetTweet(*req.ParentID); err != nil {
			return nil, err
		}
	}

	mentions, err := s.mentionedUsers(req.Mentions)
	if err != nil {
		return nil, err
	}

	tweet := &model.Tweet{
		Id:       uuid.New().String(),
		AuthorID: authorID,
		Type:     req.Type,
		Audience: req.Audience,
		Content:  req.Content,
		ParentID: req.ParentID,
		Medias:   model.MediasColumn(req.Medias),
		Mentions: mentions,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		hashtags, err := findOrCreateHashtags(tx, req.Hashtags)
		if err != nil {
			return err
		}
		tweet.Hashtags = hashtags
		return tx.Create(tweet).Error
	})
	if err != nil {
		return nil, errors.Wrap(err, "fail to create tweet")
	}

	return s.GetTweet(tweet.Id)
}

// GetTweet loads one tweet with its author, hashtags and mentions resolved.
func (s *Store) GetTweet(id string) (*model.Tweet, error) {
	var tweet model.Tweet
	queryResult := s.db.
		Preload("Author").
		Preload("Hashtags").
		Preload("Mentions").
		Where("id = ?", id).
		First(&tweet)
	if queryResult.Error != nil && !errors.Is(queryResult.Error, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(queryResult.Error, "fail to get tweet")
	}
	if queryResult.RowsAffected != 1 {
		return nil, model.ErrTweetNotFound
	}
	return &tweet, nil
}

// DeleteTweet removes a tweet owned by authorID. Deleting someone else's
// tweet reports not-found rather than leaking existence.
func (s *Store) DeleteTweet(authorID string, id string) error {
	result := s.db.Where("id = ? AND author_id = ?", id, authorID).Delete(&model.Tweet{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "fail to delete tweet")
	}
	if result.RowsAffected == 0 {
		return model.ErrTweetNotFound
	}
	return nil
}

func (s *Store) mentionedUsers(ids []string) ([]*model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []*model.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "fail to resolve mentions")
	}
	if len(users) != len(ids) {
		return nil, model.NewValidationError("mentions must be an array of existing user ids")
	}
	return users, nil
}
