package store

import (
	"github.com/chirpnet/chirp/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (s *Store) CreateUser(user *model.User) error {
	if err := s.db.Create(user).Error; err != nil {
		return errors.Wrap(err, "fail to create user")
	}
	return nil
}

func (s *Store) GetUser(id string) (*model.User, error) {
	var user model.User
	queryResult := s.db.Where("id = ?", id).First(&user)
	if queryResult.Error != nil && !errors.Is(queryResult.Error, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(queryResult.Error, "fail to get user")
	}
	if queryResult.RowsAffected != 1 {
		return nil, model.ErrUserNotFound
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	queryResult := s.db.Where("email = ?", email).First(&user)
	if queryResult.Error != nil && !errors.Is(queryResult.Error, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(queryResult.Error, "fail to get user")
	}
	if queryResult.RowsAffected != 1 {
		return nil, model.ErrUserNotFound
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	queryResult := s.db.Where("username = ?", username).First(&user)
	if queryResult.Error != nil && !errors.Is(queryResult.Error, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(queryResult.Error, "fail to get user")
	}
	if queryResult.RowsAffected != 1 {
		return nil, model.ErrUserNotFound
	}
	return &user, nil
}

func (s *Store) UpdateUser(id string, updates map[string]interface{}) (*model.User, error) {
	if err := s.db.Model(&model.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(err, "fail to update user")
	}
	return s.GetUser(id)
}

// VerifyEmail flips the user to Verified and clears the one-time token.
func (s *Store) VerifyEmail(userID string) error {
	result := s.db.Model(&model.User{}).
		Where("id = ? AND email_verify_token <> ''", userID).
		Updates(map[string]interface{}{"verify": model.UserVerifyStatusVerified, "email_verify_token": ""})
	if result.Error != nil {
		return errors.Wrap(result.Error, "fail to verify email")
	}
	if result.RowsAffected == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// Follow is idempotent: re-following an already followed user is a no-op.
func (s *Store) Follow(userID string, followedUserID string) error {
	if _, err := s.GetUser(followedUserID); err != nil {
		return err
	}
	follower := model.Follower{UserID: userID, FollowedUserID: followedUserID}
	if err := s.db.Where(&model.Follower{UserID: userID, FollowedUserID: followedUserID}).
		FirstOrCreate(&follower).Error; err != nil {
		return errors.Wrap(err, "fail to follow user")
	}
	return nil
}

// Unfollow is idempotent: unfollowing a user that is not followed succeeds.
func (s *Store) Unfollow(userID string, followedUserID string) error {
	if err := s.db.Where("user_id = ? AND followed_user_id = ?", userID, followedUserID).
		Delete(&model.Follower{}).Error; err != nil {
		return errors.Wrap(err, "fail to unfollow user")
	}
	return nil
}

// FollowedUserIDs returns the ids of every user userID follows.
func (s *Store) FollowedUserIDs(userID string) ([]string, error) {
	var ids []string
	if err := s.db.Model(&model.Follower{}).
		Where("user_id = ?", userID).
		Pluck("followed_user_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "fail to list followed users")
	}
	return ids, nil
}

// FollowStats returns (followers, following) counts for a user.
func (s *Store) FollowStats(userID string) (int64, int64, error) {
	var followers, following int64
	if err := s.db.Model(&model.Follower{}).Where("followed_user_id = ?", userID).Count(&followers).Error; err != nil {
		return 0, 0, errors.Wrap(err, "fail to count followers")
	}
	if err := s.db.Model(&model.Follower{}).Where("user_id = ?", userID).Count(&following).Error; err != nil {
		return 0, 0, errors.Wrap(err, "fail to count following")
	}
	return followers, following, nil
}

// AddCircleMember grants memberID access to userID's Circle tweets,
// idempotently.
func (s *Store) AddCircleMember(userID string, memberID string) error {
	if _, err := s.GetUser(memberID); err != nil {
		return err
	}
	membership := model.CircleMembership{UserID: userID, MemberID: memberID}
	if err := s.db.Where(&model.CircleMembership{UserID: userID, MemberID: memberID}).
		FirstOrCreate(&membership).Error; err != nil {
		return errors.Wrap(err, "fail to add circle member")
	}
	return nil
}

func (s *Store) RemoveCircleMember(userID string, memberID string) error {
	if err := s.db.Where("user_id = ? AND member_id = ?", userID, memberID).
		Delete(&model.CircleMembership{}).Error; err != nil {
		return errors.Wrap(err, "fail to remove circle member")
	}
	return nil
}

// CircleMemberIDs returns the ids granted access to userID's Circle tweets.
func (s *Store) CircleMemberIDs(userID string) ([]string, error) {
	var ids []string
	if err := s.db.Model(&model.CircleMembership{}).
		Where("user_id = ?", userID).
		Pluck("member_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "fail to list circle members")
	}
	return ids, nil
}
